package notifications

import "context"

// Pusher is the realtime dispatch channel handed to the service layer. When
// Redis is available events go through pub/sub so every server instance can
// fan out to its local connections; otherwise delivery is hub-local.
type Pusher struct {
	hub      *Hub
	notifier *Notifier
}

// NewPusher creates a Pusher over the hub and notifier.
func NewPusher(hub *Hub, notifier *Notifier) *Pusher {
	return &Pusher{hub: hub, notifier: notifier}
}

// PushUser delivers payload to every live connection of userID.
func (p *Pusher) PushUser(ctx context.Context, userID uint, payload string) error {
	if p.notifier.Enabled() {
		return p.notifier.PublishUser(ctx, userID, payload)
	}
	p.hub.Broadcast(userID, payload)
	return nil
}

// Online reports whether userID has a live connection on this instance.
func (p *Pusher) Online(userID uint) bool {
	return p.hub.IsOnline(userID)
}
