package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

type SqliteStatusRepository struct {
	db *gorm.DB
}

func NewSqliteStatusRepository(db *gorm.DB) *SqliteStatusRepository {
	return &SqliteStatusRepository{db: db}
}

func (r *SqliteStatusRepository) Create(ctx context.Context, status *domain.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if status == nil {
		return errors.New("status is nil")
	}

	statusModel := toModelStatus(status)
	if err := r.db.WithContext(ctx).Create(statusModel).Error; err != nil {
		return err
	}
	status.ID = statusModel.ID
	return nil
}

func (r *SqliteStatusRepository) GetByID(ctx context.Context, id int64) (*domain.Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var status model.Status
	err := r.db.WithContext(ctx).Preload("Owner").First(&status, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainStatus(&status), nil
}

// Active filtering is time-based: a status past its expires_at does not
// appear even if is_active was never cleared.
func (r *SqliteStatusRepository) ListActiveForUser(ctx context.Context, userID int64) ([]*domain.Status, error) {
	return r.listActive(ctx, "user_id = ?", userID)
}

func (r *SqliteStatusRepository) ListActiveForUsers(ctx context.Context, userIDs []int64) ([]*domain.Status, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	return r.listActive(ctx, "user_id IN ?", userIDs)
}

func (r *SqliteStatusRepository) listActive(ctx context.Context, query string, args ...any) ([]*domain.Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var statuses []model.Status
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where(query, args...).
		Where("is_active = ? AND expires_at > ?", true, time.Now().UTC()).
		Order("timestamp ASC").
		Find(&statuses).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Status, 0, len(statuses))
	for i := range statuses {
		result = append(result, toDomainStatus(&statuses[i]))
	}
	return result, nil
}

// RecordView is idempotent per (status, viewer): a second view hits the
// unique index and is ignored.
func (r *SqliteStatusRepository) RecordView(ctx context.Context, statusID, viewerID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model.StatusView{
		StatusID: statusID,
		ViewerID: viewerID,
		ViewedAt: time.Now().UTC(),
	}).Error
}

func (r *SqliteStatusRepository) HasViewed(ctx context.Context, statusID, viewerID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.StatusView{}).
		Where("status_id = ? AND viewer_id = ?", statusID, viewerID).
		Count(&count).Error
	return count > 0, err
}

func (r *SqliteStatusRepository) ViewCount(ctx context.Context, statusID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.StatusView{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	return count, err
}

func (r *SqliteStatusRepository) ListViewers(ctx context.Context, statusID int64) ([]*domain.StatusView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var views []model.StatusView
	err := r.db.WithContext(ctx).
		Preload("Viewer").
		Where("status_id = ?", statusID).
		Order("viewed_at ASC").
		Find(&views).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.StatusView, 0, len(views))
	for i := range views {
		result = append(result, toDomainStatusView(&views[i]))
	}
	return result, nil
}

// CleanupExpired is the eager sweep an external scheduler may run: it clears
// the is_active flag on expired statuses and drops their views. Reads stay
// correct without it because active queries filter on expires_at.
func (r *SqliteStatusRepository) CleanupExpired(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	var swept int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expiredIDs []int64
		if err := tx.Model(&model.Status{}).
			Where("is_active = ? AND expires_at <= ?", true, now).
			Pluck("id", &expiredIDs).Error; err != nil {
			return err
		}
		if len(expiredIDs) == 0 {
			return nil
		}

		res := tx.Model(&model.Status{}).Where("id IN ?", expiredIDs).Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		swept = res.RowsAffected

		return tx.Where("status_id IN ?", expiredIDs).Delete(&model.StatusView{}).Error
	})
	return swept, err
}
