package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

type SqliteUserRepository struct {
	db *gorm.DB
}

func NewSqliteUserRepository(db *gorm.DB) *SqliteUserRepository {
	return &SqliteUserRepository{db: db}
}

func (r *SqliteUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}

	userModel := toModelUser(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	user.ID = userModel.ID
	return nil
}

func (r *SqliteUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *SqliteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *SqliteUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *SqliteUserRepository) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainUser(&user), nil
}

// List returns every non-blocked user except excludeID, for the contacts
// screen.
func (r *SqliteUserRepository) List(ctx context.Context, excludeID int64) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var users []model.User
	err := r.db.WithContext(ctx).
		Where("id != ? AND is_blocked = ?", excludeID, false).
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(users), nil
}

// ListAll includes blocked users; it backs the admin dashboard.
func (r *SqliteUserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var users []model.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(users), nil
}

func (r *SqliteUserRepository) Search(ctx context.Context, query string, excludeID int64) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := "%" + query + "%"
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("id != ? AND is_blocked = ? AND (username LIKE ? OR email LIKE ?)", excludeID, false, pattern, pattern).
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(users), nil
}

// SetOnline flips presence; going offline also stamps last_seen.
func (r *SqliteUserRepository) SetOnline(ctx context.Context, id int64, online bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	updates := map[string]any{"is_online": online}
	if !online {
		updates["last_seen"] = time.Now().UTC()
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SqliteUserRepository) UpdateProfile(ctx context.Context, id int64, username, profilePicture string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]any{
		"username":        username,
		"profile_picture": profilePicture,
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SqliteUserRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return r.setFlag(ctx, id, "is_blocked", blocked)
}

func (r *SqliteUserRepository) SetAdmin(ctx context.Context, id int64, admin bool) error {
	return r.setFlag(ctx, id, "is_admin", admin)
}

func (r *SqliteUserRepository) setFlag(ctx context.Context, id int64, column string, value bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user and everything referencing it. The schema has no
// cascading deletes, so referential cleanup happens here, in one transaction.
func (r *SqliteUserRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("from_user_id = ? OR to_user_id = ?", id, id).Delete(&model.FriendRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id1 = ? OR user_id2 = ?", id, id).Delete(&model.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ?", id).Delete(&model.GroupMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("caller_id = ? OR receiver_id = ?", id, id).Delete(&model.Call{}).Error; err != nil {
			return err
		}

		var statusIDs []int64
		if err := tx.Model(&model.Status{}).Where("user_id = ?", id).Pluck("id", &statusIDs).Error; err != nil {
			return err
		}
		if len(statusIDs) > 0 {
			if err := tx.Where("status_id IN ?", statusIDs).Delete(&model.StatusView{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Status{}).Error; err != nil {
			return err
		}
		if err := tx.Where("viewer_id = ?", id).Delete(&model.StatusView{}).Error; err != nil {
			return err
		}

		return tx.Where("target_user_id = ?", id).Delete(&model.Notification{}).Error
	})
}

func (r *SqliteUserRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}
