package service

import (
	"context"
	"encoding/json"

	"zord/internal/models"
	"zord/internal/observability"
	"zord/internal/repository"
)

// RealtimePusher abstracts the realtime dispatch channel. Push is
// fire-and-forget: implementations must never block on a slow receiver, and
// a push that reaches no live connection is not an error.
type RealtimePusher interface {
	PushUser(ctx context.Context, userID uint, payload string) error
	Online(userID uint) bool
}

// NotifyInput describes a notification to persist and push.
type NotifyInput struct {
	SenderID   uint
	ReceiverID uint
	Type       models.NotificationType
	Message    string
	PostID     *uint
}

// notificationEvent is the wire shape pushed over the realtime channel.
type notificationEvent struct {
	Type    string                   `json:"type"`
	Payload notificationEventPayload `json:"payload"`
}

type notificationEventPayload struct {
	ID        uint                    `json:"id"`
	Type      models.NotificationType `json:"notification_type"`
	Message   string                  `json:"message"`
	Sender    models.Summary          `json:"sender"`
	PostID    *uint                   `json:"post_id,omitempty"`
	CreatedAt int64                   `json:"created_at"`
}

// NotificationService persists notification records and hands them to the
// realtime channel. Persistence failures propagate to the triggering action;
// push failures never do.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	pusher           RealtimePusher
	dispatchLog      *observability.DispatchLogger
}

// NewNotificationService creates a new NotificationService. pusher may be nil
// when no realtime channel is available (tests, offline tools); records are
// still persisted.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	pusher RealtimePusher,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pusher:           pusher,
		dispatchLog:      observability.NewDispatchLogger(),
	}
}

// Notify persists the notification and pushes it to the receiver's live
// connections. A user acting on their own content produces no notification
// at all: nothing is persisted and nothing is pushed.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) error {
	if in.SenderID == in.ReceiverID {
		return nil
	}
	if !in.Type.Valid() {
		return models.NewValidationError("Invalid notification type")
	}

	notification := &models.Notification{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Type:       in.Type,
		Message:    in.Message,
		PostID:     in.PostID,
		Seen:       false,
		IsActive:   true,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}
	observability.NotificationsCreated.WithLabelValues(string(in.Type)).Inc()

	s.push(ctx, notification)
	return nil
}

// push hands the persisted notification to the realtime channel. Best effort
// only: every failure is logged and swallowed.
func (s *NotificationService) push(ctx context.Context, n *models.Notification) {
	if s.pusher == nil {
		return
	}

	sender := models.Summary{ID: n.SenderID}
	if u, err := s.userRepo.GetByID(ctx, n.SenderID); err == nil {
		sender = u.Summary()
	}

	event := notificationEvent{
		Type: "notification",
		Payload: notificationEventPayload{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			Sender:    sender,
			PostID:    n.PostID,
			CreatedAt: n.CreatedAt.Unix(),
		},
	}
	data, err := json.Marshal(event)
	if err != nil {
		s.dispatchLog.LogDeliveryFailure(ctx, n.ReceiverID, string(n.Type), err)
		return
	}

	if err := s.pusher.PushUser(ctx, n.ReceiverID, string(data)); err != nil {
		observability.NotificationPushes.WithLabelValues("offline").Inc()
		s.dispatchLog.LogDeliveryFailure(ctx, n.ReceiverID, string(n.Type), err)
		return
	}

	if s.pusher.Online(n.ReceiverID) {
		observability.NotificationPushes.WithLabelValues("delivered").Inc()
		s.dispatchLog.LogDispatched(ctx, n.ReceiverID, string(n.Type))
	} else {
		observability.NotificationPushes.WithLabelValues("offline").Inc()
		s.dispatchLog.LogDeliveryFailure(ctx, n.ReceiverID, string(n.Type), nil)
	}
}

// NotificationPage is one page of a receiver's notification list together
// with the totals the client needs to paginate and badge.
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	TotalPages    int                   `json:"total_pages"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
	UnreadCount   int64                 `json:"unread_count"`
}

// ListNotifications returns one page of the receiver's notifications, newest
// first, optionally restricted to unseen ones.
func (s *NotificationService) ListNotifications(ctx context.Context, receiverID uint, unseenOnly bool, limit, offset int) (*NotificationPage, error) {
	notifications, err := s.notificationRepo.GetByReceiver(ctx, receiverID, unseenOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.notificationRepo.CountByReceiver(ctx, receiverID, unseenOnly)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnseen(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &NotificationPage{
		Notifications: notifications,
		Total:         total,
		TotalPages:    totalPages,
		Limit:         limit,
		Offset:        offset,
		UnreadCount:   unread,
	}, nil
}

// CountUnseen returns the number of unseen notifications for the receiver.
func (s *NotificationService) CountUnseen(ctx context.Context, receiverID uint) (int64, error) {
	return s.notificationRepo.CountUnseen(ctx, receiverID)
}

// MarkSeen marks a notification as seen. Only the receiver may do so. The
// transition is one-directional and idempotent: marking an already-seen
// notification succeeds without changing anything.
func (s *NotificationService) MarkSeen(ctx context.Context, notificationID, requesterID uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.ReceiverID != requesterID {
		return nil, models.NewAccessDeniedError("Only the receiver may mark a notification as seen")
	}
	if !notification.Seen {
		if err := s.notificationRepo.MarkSeen(ctx, notificationID); err != nil {
			return nil, err
		}
		notification.Seen = true
	}
	return notification, nil
}

// MarkAllSeen marks every unseen notification of the receiver as seen.
func (s *NotificationService) MarkAllSeen(ctx context.Context, receiverID uint) error {
	return s.notificationRepo.MarkAllSeen(ctx, receiverID)
}

// DeleteNotification removes a notification. Only the receiver may do so.
func (s *NotificationService) DeleteNotification(ctx context.Context, notificationID, requesterID uint) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.ReceiverID != requesterID {
		return models.NewAccessDeniedError("Only the receiver may delete a notification")
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}

// CascadeDeleteForPost removes every notification that references the post.
// Called from post deletion so dangling like and comment notifications do
// not survive their subject.
func (s *NotificationService) CascadeDeleteForPost(ctx context.Context, postID uint) error {
	return s.notificationRepo.DeleteForPost(ctx, postID)
}
