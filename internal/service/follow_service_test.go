package service

import (
	"context"
	"testing"

	"zord/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("new edge notifies the followee", func(t *testing.T) {
		notifier := &notifierStub{}
		svc := NewFollowService(noopFollowRepo(), noopUserRepo(), notifier)

		require.NoError(t, svc.Follow(ctx, 1, 2))

		require.Len(t, notifier.notified, 1)
		assert.Equal(t, uint(1), notifier.notified[0].SenderID)
		assert.Equal(t, uint(2), notifier.notified[0].ReceiverID)
		assert.Equal(t, models.NotificationFollow, notifier.notified[0].Type)
	})

	t.Run("repeat follow produces no second notification", func(t *testing.T) {
		follows := noopFollowRepo()
		follows.followFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
		notifier := &notifierStub{}
		svc := NewFollowService(follows, noopUserRepo(), notifier)

		require.NoError(t, svc.Follow(ctx, 1, 2))
		assert.Empty(t, notifier.notified)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		svc := NewFollowService(noopFollowRepo(), noopUserRepo(), &notifierStub{})

		err := svc.Follow(ctx, 1, 1)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("unknown followee propagates not found", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewFollowService(noopFollowRepo(), users, &notifierStub{})

		err := svc.Follow(ctx, 1, 2)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()

	t.Run("unfollow of unfollowed user is a no-op", func(t *testing.T) {
		follows := noopFollowRepo()
		follows.unfollowFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
		svc := NewFollowService(follows, noopUserRepo(), &notifierStub{})

		assert.NoError(t, svc.Unfollow(ctx, 1, 2))
	})

	t.Run("self unfollow rejected", func(t *testing.T) {
		svc := NewFollowService(noopFollowRepo(), noopUserRepo(), &notifierStub{})

		require.Error(t, svc.Unfollow(ctx, 1, 1))
	})
}

func TestFollowService_GetStats(t *testing.T) {
	follows := noopFollowRepo()
	follows.countFollowersFn = func(_ context.Context, _ uint) (int64, error) { return 3, nil }
	follows.countFollowingFn = func(_ context.Context, _ uint) (int64, error) { return 7, nil }
	svc := NewFollowService(follows, noopUserRepo(), &notifierStub{})

	stats, err := svc.GetStats(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Followers)
	assert.Equal(t, int64(7), stats.Following)
}
