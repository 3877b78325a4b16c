// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"zord/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	GetByReceiver(ctx context.Context, receiverID uint, unseenOnly bool, limit, offset int) ([]models.Notification, error)
	CountByReceiver(ctx context.Context, receiverID uint, unseenOnly bool) (int64, error)
	CountUnseen(ctx context.Context, receiverID uint) (int64, error)
	MarkSeen(ctx context.Context, id uint) error
	MarkAllSeen(ctx context.Context, receiverID uint) error
	Delete(ctx context.Context, id uint) error
	DeleteForPost(ctx context.Context, postID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := readDB(r.db).WithContext(ctx).
		Preload("Sender").
		First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Notification", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &notification, nil
}

func (r *notificationRepository) GetByReceiver(ctx context.Context, receiverID uint, unseenOnly bool, limit, offset int) ([]models.Notification, error) {
	var notifications []models.Notification
	query := readDB(r.db).WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ? AND is_active = ?", receiverID, true)
	if unseenOnly {
		query = query.Where("seen = ?", false)
	}
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountByReceiver(ctx context.Context, receiverID uint, unseenOnly bool) (int64, error) {
	var count int64
	query := readDB(r.db).WithContext(ctx).
		Model(&models.Notification{}).
		Where("receiver_id = ? AND is_active = ?", receiverID, true)
	if unseenOnly {
		query = query.Where("seen = ?", false)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *notificationRepository) CountUnseen(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Notification{}).
		Where("receiver_id = ? AND seen = ? AND is_active = ?", receiverID, false, true).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// MarkSeen flips seen to true. The transition is one-directional; marking an
// already-seen notification is a no-op, never an error.
func (r *notificationRepository) MarkSeen(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		UpdateColumn("seen", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, receiverID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("receiver_id = ? AND seen = ?", receiverID, false).
		UpdateColumn("seen", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Notification{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteForPost removes every notification referencing the post. Called when
// a post is deleted so stale like and comment notifications do not dangle.
func (r *notificationRepository) DeleteForPost(ctx context.Context, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Notification{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
