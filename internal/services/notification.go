package services

import (
	"context"

	"stackit/internal/metrics"
	"stackit/internal/models"
	"stackit/internal/voting"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier receives notification events. Delivery is fire-and-forget:
// a failure never propagates to the operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

type NotificationService struct {
	db    *gorm.DB
	log   *zap.Logger
	async bool
}

// NewNotificationService returns a service that stores notifications in the
// background when async is true, and inline otherwise.
func NewNotificationService(db *gorm.DB, log *zap.Logger, async bool) *NotificationService {
	return &NotificationService{db: db, log: log, async: async}
}

// Notify stores n unless the sender is also the recipient.
func (s *NotificationService) Notify(ctx context.Context, n models.Notification) {
	if n.ActorID != nil && *n.ActorID == n.UserID {
		return
	}
	n.IsActive = true

	deliver := func(ctx context.Context) {
		if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
			metrics.NotificationFailures.Inc()
			s.log.Warn("store notification",
				zap.Uint("recipient", n.UserID),
				zap.String("type", string(n.Type)),
				zap.Error(err))
		}
	}

	if !s.async {
		deliver(ctx)
		return
	}
	go deliver(context.WithoutCancel(ctx))
}

// List returns a page of the user's notifications and the unread count.
func (s *NotificationService) List(ctx context.Context, userID uint, page Page, unreadOnly bool) ([]models.Notification, int64, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_active = ?", userID, true)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, 0, storeErr(err)
	}

	var notifications []models.Notification
	err := q.Preload("Actor").
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, 0, storeErr(err)
	}

	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return notifications, total, unread, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_active = ?", userID, false, true).
		Count(&count).Error
	return count, storeErr(err)
}

// MarkRead marks one notification read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	n, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	return storeErr(s.db.WithContext(ctx).Model(n).Update("is_read", true).Error)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_active = ?", userID, false, true).
		Update("is_read", true).Error
	return storeErr(err)
}

// Delete soft-deletes one notification. Only the recipient may do so.
func (s *NotificationService) Delete(ctx context.Context, id, userID uint) error {
	n, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	return storeErr(s.db.WithContext(ctx).Model(n).Update("is_active", false).Error)
}

func (s *NotificationService) owned(ctx context.Context, id, userID uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, storeErr(err)
	}
	if !n.IsActive {
		return nil, voting.ErrNotFound
	}
	if n.UserID != userID {
		return nil, voting.ErrPermission
	}
	return &n, nil
}
