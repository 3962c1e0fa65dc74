package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

type SqliteCallRepository struct {
	db *gorm.DB
}

func NewSqliteCallRepository(db *gorm.DB) *SqliteCallRepository {
	return &SqliteCallRepository{db: db}
}

func (r *SqliteCallRepository) Create(ctx context.Context, call *domain.Call) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if call == nil {
		return errors.New("call is nil")
	}
	return r.db.WithContext(ctx).Create(toModelCall(call)).Error
}

func (r *SqliteCallRepository) GetByID(ctx context.Context, id string) (*domain.Call, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var call model.Call
	err := r.db.WithContext(ctx).First(&call, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainCall(&call), nil
}

func (r *SqliteCallRepository) UpdateStatus(ctx context.Context, id string, status domain.CallStatus, duration int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	updates := map[string]any{
		"status":   string(status),
		"duration": duration,
	}
	if status == domain.CallStatusEnded || status == domain.CallStatusMissed || status == domain.CallStatusDeclined {
		now := time.Now().UTC()
		updates["ended_at"] = &now
	}

	res := r.db.WithContext(ctx).Model(&model.Call{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForUser returns call history newest first; both legs see the row.
func (r *SqliteCallRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Call, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var calls []model.Call
	err := r.db.WithContext(ctx).
		Where("caller_id = ? OR receiver_id = ?", userID, userID).
		Order("started_at DESC").
		Find(&calls).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Call, 0, len(calls))
	for i := range calls {
		result = append(result, toDomainCall(&calls[i]))
	}
	return result, nil
}
