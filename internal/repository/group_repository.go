package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

type SqliteGroupRepository struct {
	db *gorm.DB
}

func NewSqliteGroupRepository(db *gorm.DB) *SqliteGroupRepository {
	return &SqliteGroupRepository{db: db}
}

// Create inserts the group and its creator's admin membership atomically.
func (r *SqliteGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if group == nil {
		return errors.New("group is nil")
	}

	groupModel := toModelGroup(group)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(groupModel).Error; err != nil {
			return err
		}
		return tx.Create(&model.GroupMember{
			GroupID:  groupModel.ID,
			UserID:   group.CreatedBy,
			Role:     string(domain.GroupRoleAdmin),
			JoinedAt: time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return err
	}
	group.ID = groupModel.ID
	return nil
}

func (r *SqliteGroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var group model.Group
	err := r.db.WithContext(ctx).Preload("Members").Preload("Members.User").First(&group, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainGroup(&group), nil
}

func (r *SqliteGroupRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var groups []model.Group
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members gm ON gm.group_id = groups.id").
		Where("gm.user_id = ? AND groups.is_active = ?", userID, true).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Group, 0, len(groups))
	for i := range groups {
		result = append(result, toDomainGroup(&groups[i]))
	}
	return result, nil
}

func (r *SqliteGroupRepository) AddMember(ctx context.Context, groupID, userID int64, role domain.GroupRole) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Create(&model.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		Role:     string(role),
		JoinedAt: time.Now().UTC(),
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *SqliteGroupRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SqliteGroupRepository) ListMembers(ctx context.Context, groupID int64) ([]*domain.GroupMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var members []model.GroupMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.GroupMember, 0, len(members))
	for i := range members {
		result = append(result, toDomainGroupMember(&members[i]))
	}
	return result, nil
}

func (r *SqliteGroupRepository) MemberRole(ctx context.Context, groupID, userID int64) (domain.GroupRole, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var member model.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return domain.GroupRole(member.Role), nil
}

func (r *SqliteGroupRepository) SaveMessage(ctx context.Context, msg *domain.GroupMessage) (*domain.GroupMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, errors.New("message is nil")
	}

	msgModel := toModelGroupMessage(msg)
	if err := r.db.WithContext(ctx).Create(msgModel).Error; err != nil {
		return nil, err
	}

	var stored model.GroupMessage
	if err := r.db.WithContext(ctx).Preload("Sender").First(&stored, "id = ?", msgModel.ID).Error; err != nil {
		return nil, err
	}
	return toDomainGroupMessage(&stored), nil
}

func (r *SqliteGroupRepository) ListMessages(ctx context.Context, groupID int64) ([]*domain.GroupMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var messages []model.GroupMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("group_id = ?", groupID).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.GroupMessage, 0, len(messages))
	for i := range messages {
		result = append(result, toDomainGroupMessage(&messages[i]))
	}
	return result, nil
}

func (r *SqliteGroupRepository) Deactivate(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Group{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
