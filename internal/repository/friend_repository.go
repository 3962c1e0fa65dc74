package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

type SqliteFriendRepository struct {
	db *gorm.DB
}

func NewSqliteFriendRepository(db *gorm.DB) *SqliteFriendRepository {
	return &SqliteFriendRepository{db: db}
}

func (r *SqliteFriendRepository) CreateRequest(ctx context.Context, req *domain.FriendRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req == nil {
		return errors.New("request is nil")
	}

	reqModel := toModelFriendRequest(req)
	if err := r.db.WithContext(ctx).Create(reqModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRequestExists
		}
		return err
	}
	req.ID = reqModel.ID
	return nil
}

func (r *SqliteFriendRepository) GetRequestByID(ctx context.Context, id int64) (*domain.FriendRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var req model.FriendRequest
	err := r.db.WithContext(ctx).Preload("From").First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainFriendRequest(&req), nil
}

// GetRequestBetween finds a request in either direction between two users.
func (r *SqliteFriendRepository) GetRequestBetween(ctx context.Context, a, b int64) (*domain.FriendRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var req model.FriendRequest
	err := r.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainFriendRequest(&req), nil
}

func (r *SqliteFriendRepository) GetRequestFrom(ctx context.Context, from, to int64) (*domain.FriendRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var req model.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", from, to).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainFriendRequest(&req), nil
}

func (r *SqliteFriendRepository) UpdateRequestStatus(ctx context.Context, id int64, status domain.FriendRequestStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.FriendRequest{}).Where("id = ?", id).Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AcceptRequest flips the request to accepted and inserts the friendship row
// in one transaction, so a crash cannot leave an accepted request without a
// friendship. The friendship insert ignores conflicts, which makes a replay
// harmless.
func (r *SqliteFriendRepository) AcceptRequest(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.FriendRequest
		if err := tx.First(&req, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&model.FriendRequest{}).Where("id = ?", id).Update("status", string(domain.FriendRequestAccepted))
		if res.Error != nil {
			return res.Error
		}

		friendship := domain.NewFriendship(req.FromUserID, req.ToUserID)
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Friendship{
			UserID1:   friendship.UserID1,
			UserID2:   friendship.UserID2,
			CreatedAt: friendship.CreatedAt,
		}).Error
	})
}

func (r *SqliteFriendRepository) ListIncomingPending(ctx context.Context, userID int64) ([]*domain.FriendRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reqs []model.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("From").
		Where("to_user_id = ? AND status = ?", userID, string(domain.FriendRequestPending)).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.FriendRequest, 0, len(reqs))
	for i := range reqs {
		result = append(result, toDomainFriendRequest(&reqs[i]))
	}
	return result, nil
}

func (r *SqliteFriendRepository) CountIncomingPending(ctx context.Context, userID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.FriendRequest{}).
		Where("to_user_id = ? AND status = ?", userID, string(domain.FriendRequestPending)).
		Count(&count).Error
	return count, err
}

func (r *SqliteFriendRepository) GetFriendship(ctx context.Context, a, b int64) (*domain.Friendship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a > b {
		a, b = b, a
	}

	var f model.Friendship
	err := r.db.WithContext(ctx).Where("user_id1 = ? AND user_id2 = ?", a, b).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainFriendship(&f), nil
}

func (r *SqliteFriendRepository) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	_, err := r.GetFriendship(ctx, a, b)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// ListFriends resolves the symmetric friendship rows into the users on the
// other side.
func (r *SqliteFriendRepository) ListFriends(ctx context.Context, userID int64) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN friendships f ON (f.user_id1 = users.id AND f.user_id2 = ?) OR (f.user_id2 = users.id AND f.user_id1 = ?)", userID, userID).
		Where("users.id != ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(users), nil
}

func (r *SqliteFriendRepository) DeleteFriendship(ctx context.Context, a, b int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a > b {
		a, b = b, a
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id1 = ? AND user_id2 = ?", a, b).Delete(&model.Friendship{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		// a later request between the pair must start from a clean slate
		return tx.Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
			Delete(&model.FriendRequest{}).Error
	})
}
