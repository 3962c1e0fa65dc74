package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

type SqliteMessageRepository struct {
	db *gorm.DB
}

func NewSqliteMessageRepository(db *gorm.DB) *SqliteMessageRepository {
	return &SqliteMessageRepository{db: db}
}

// Save inserts the message and returns the row as persisted, re-read by
// primary key, so callers never act on a record the database did not store.
func (r *SqliteMessageRepository) Save(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, errors.New("message is nil")
	}

	msgModel := toModelMessage(msg)
	if err := r.db.WithContext(ctx).Create(msgModel).Error; err != nil {
		return nil, err
	}

	var stored model.Message
	if err := r.db.WithContext(ctx).First(&stored, "id = ?", msgModel.ID).Error; err != nil {
		return nil, err
	}
	return toDomainMessage(&stored), nil
}

func (r *SqliteMessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var msg model.Message
	err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainMessage(&msg), nil
}

// History returns every message between a and b, in both directions, ordered
// by timestamp ascending. The result is identical for History(a, b) and
// History(b, a).
func (r *SqliteMessageRepository) History(ctx context.Context, a, b int64) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Message, 0, len(messages))
	for i := range messages {
		result = append(result, toDomainMessage(&messages[i]))
	}
	return result, nil
}

// MarkRead is a one-way transition; a read message never becomes unread.
func (r *SqliteMessageRepository) MarkRead(ctx context.Context, messageID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ? AND is_read = ?", messageID, false).
		Update("is_read", true)
	return res.Error
}

// MarkConversationRead marks every message the friend sent to self as read.
func (r *SqliteMessageRepository) MarkConversationRead(ctx context.Context, selfID, friendID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", friendID, selfID, false).
		Update("is_read", true).Error
}

// UnreadCount never counts messages sent by self.
func (r *SqliteMessageRepository) UnreadCount(ctx context.Context, selfID, friendID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", friendID, selfID, false).
		Count(&count).Error
	return count, err
}

func (r *SqliteMessageRepository) UnreadTotal(ctx context.Context, selfID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", selfID, false).
		Count(&count).Error
	return count, err
}

// LastMessageAt returns the most recent message timestamp between two users,
// or nil when they never talked.
func (r *SqliteMessageRepository) LastMessageAt(ctx context.Context, a, b int64) (*time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var msg model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp DESC, id DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	ts := msg.Timestamp
	return &ts, nil
}

func (r *SqliteMessageRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Count(&count).Error
	return count, err
}
