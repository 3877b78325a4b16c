package models

import (
	"time"
)

// NotificationType identifies what kind of action produced a notification.
// The set is open; new action types add new values without a migration.
type NotificationType string

const (
	// NotificationLike is sent when someone likes a post.
	NotificationLike NotificationType = "like"
	// NotificationComment is sent when someone comments on a post.
	NotificationComment NotificationType = "comment"
	// NotificationFollow is sent when someone starts following a user.
	NotificationFollow NotificationType = "follow"
)

// Valid reports whether t carries a usable value. The type set is open, so
// any non-empty value is accepted.
func (t NotificationType) Valid() bool {
	return t != ""
}

// Notification is the durable record of a social action directed at a user.
// Created as a side effect of a like/comment/follow; after creation the only
// mutation is flipping Seen. Deleted by the receiver, or cascaded when the
// related post is deleted.
type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	SenderID   uint             `gorm:"not null" json:"sender_id"`
	ReceiverID uint             `gorm:"not null;index" json:"receiver_id"`
	Type       NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	PostID     *uint            `gorm:"index" json:"post_id,omitempty"`
	Message    string           `gorm:"not null" json:"message"`
	Seen       bool             `gorm:"not null;default:false;index" json:"seen"`
	IsActive   bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time        `json:"created_at"`

	// Relationships
	Sender   User  `gorm:"foreignKey:SenderID" json:"sender"`
	Receiver User  `gorm:"foreignKey:ReceiverID" json:"-"`
	Post     *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
