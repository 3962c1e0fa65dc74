package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

type SqliteNotificationRepository struct {
	db *gorm.DB
}

func NewSqliteNotificationRepository(db *gorm.DB) *SqliteNotificationRepository {
	return &SqliteNotificationRepository{db: db}
}

func (r *SqliteNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n == nil {
		return errors.New("notification is nil")
	}

	nModel := toModelNotification(n)
	if err := r.db.WithContext(ctx).Create(nModel).Error; err != nil {
		return err
	}
	n.ID = nModel.ID
	return nil
}

// ListForUser returns globals plus the user's individual notifications,
// newest first.
func (r *SqliteNotificationRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("type = ? OR target_user_id = ?", string(domain.NotificationGlobal), userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Notification, 0, len(notifications))
	for i := range notifications {
		result = append(result, toDomainNotification(&notifications[i]))
	}
	return result, nil
}

func (r *SqliteNotificationRepository) MarkRead(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SqliteNotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("(type = ? OR target_user_id = ?) AND is_read = ?", string(domain.NotificationGlobal), userID, false).
		Count(&count).Error
	return count, err
}

func (r *SqliteNotificationRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
