package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(10, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(10))
	assert.Equal(t, 1, hub.ConnectionCount(10))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(10))
	assert.Equal(t, 0, hub.ConnectionCount(10))

	_ = hub.Shutdown(context.Background())
}

func TestHub_ShutdownClearsRegistryAndIsRepeatable(t *testing.T) {
	hub := NewHub()

	_, err := hub.Register(10, nil)
	require.NoError(t, err)
	_, err = hub.Register(11, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.False(t, hub.IsOnline(10))
	assert.False(t, hub.IsOnline(11))
	assert.Equal(t, 0, hub.Broadcast(10, "gone"))

	require.NoError(t, hub.Shutdown(context.Background()))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(10, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(10, nil)
	assert.Error(t, err)

	// Other users are unaffected by one user's limit.
	_, err = hub.Register(11, nil)
	assert.NoError(t, err)

	_ = hub.Shutdown(context.Background())
}

func TestHub_BroadcastReachesEveryConnection(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(10, nil)
	require.NoError(t, err)
	other, err := hub.Register(11, nil)
	require.NoError(t, err)

	delivered := hub.Broadcast(10, `{"type":"notification"}`)
	assert.Equal(t, 2, delivered)

	for _, c := range []*Client{clientA, clientB} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, `{"type":"notification"}`, string(msg))
		default:
			t.Fatal("connection did not receive the broadcast")
		}
	}
	select {
	case <-other.Send:
		t.Fatal("message leaked to another user's connection")
	default:
	}

	_ = hub.Shutdown(context.Background())
}

func TestHub_BroadcastToOfflineUser(t *testing.T) {
	hub := NewHub()

	assert.Equal(t, 0, hub.Broadcast(42, "nobody home"))
	assert.False(t, hub.IsOnline(42))

	_ = hub.Shutdown(context.Background())
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(11, nil)
	require.NoError(t, err)

	hub.BroadcastAll("maintenance at midnight")

	for _, c := range []*Client{clientA, clientB} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "maintenance at midnight", string(msg))
		default:
			t.Fatal("connection did not receive the broadcast")
		}
	}

	_ = hub.Shutdown(context.Background())
}

func TestHub_StartWiringForwardsUserChannel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	notifier := NewNotifier(rdb)

	client, err := hub.Register(7, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	require.NoError(t, notifier.PublishUser(context.Background(), 7, "hello"))

	assert.Eventually(t, func() bool {
		select {
		case msg := <-client.Send:
			return string(msg) == "hello"
		default:
			return false
		}
	}, testEventuallyTimeout, testPollInterval)

	_ = hub.Shutdown(context.Background())
}

func TestPusher_FallsBackToHubWithoutRedis(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(3, nil)
	require.NoError(t, err)

	pusher := NewPusher(hub, nil)

	require.NoError(t, pusher.PushUser(context.Background(), 3, "direct"))
	select {
	case msg := <-client.Send:
		assert.Equal(t, "direct", string(msg))
	default:
		t.Fatal("hub-local delivery did not happen")
	}
	assert.True(t, pusher.Online(3))
	assert.False(t, pusher.Online(4))

	_ = hub.Shutdown(context.Background())
}
