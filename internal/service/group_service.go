package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
)

var (
	ErrNotMember     = errors.New("user is not a member of the group")
	ErrNotGroupAdmin = errors.New("only a group admin can do this")
)

type GroupService struct {
	groups repository.GroupRepository
	users  repository.UserRepository
	log    *slog.Logger
}

func NewGroupService(groups repository.GroupRepository, users repository.UserRepository, log *slog.Logger) *GroupService {
	if log == nil {
		log = slog.Default()
	}
	return &GroupService{groups: groups, users: users, log: log}
}

func (s *GroupService) Create(ctx context.Context, creatorID int64, name, description, avatar string) (*domain.Group, error) {
	const op = "service.group.create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("group name is required")
	}

	group := domain.NewGroup(name, description, avatar, creatorID)
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	s.log.Info("group created", slog.String("op", op), slog.Int64("group_id", group.ID))
	return group, nil
}

func (s *GroupService) Get(ctx context.Context, userID, groupID int64) (*domain.Group, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groups.GetByID(ctx, groupID)
}

func (s *GroupService) ListForUser(ctx context.Context, userID int64) ([]*domain.Group, error) {
	return s.groups.ListForUser(ctx, userID)
}

// AddMember requires the actor to be a group admin.
func (s *GroupService) AddMember(ctx context.Context, actorID, groupID, userID int64) error {
	if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.groups.AddMember(ctx, groupID, userID, domain.GroupRoleMember)
}

// RemoveMember allows admins to remove anyone and members to leave.
func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, userID int64) error {
	if actorID != userID {
		if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
			return err
		}
	}
	return s.groups.RemoveMember(ctx, groupID, userID)
}

func (s *GroupService) SendMessage(ctx context.Context, senderID, groupID int64, text string) (*domain.GroupMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("message is empty")
	}
	if len(text) > maxMessageLength {
		return nil, errors.New("message is too long")
	}
	if err := s.requireMember(ctx, groupID, senderID); err != nil {
		return nil, err
	}
	return s.groups.SaveMessage(ctx, domain.NewGroupMessage(groupID, senderID, text))
}

func (s *GroupService) Messages(ctx context.Context, userID, groupID int64) ([]*domain.GroupMessage, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groups.ListMessages(ctx, groupID)
}

func (s *GroupService) Deactivate(ctx context.Context, actorID, groupID int64) error {
	if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
		return err
	}
	return s.groups.Deactivate(ctx, groupID)
}

func (s *GroupService) requireMember(ctx context.Context, groupID, userID int64) error {
	_, err := s.groups.MemberRole(ctx, groupID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotMember
	}
	return err
}

func (s *GroupService) requireAdmin(ctx context.Context, groupID, userID int64) error {
	role, err := s.groups.MemberRole(ctx, groupID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotMember
	}
	if err != nil {
		return err
	}
	if role != domain.GroupRoleAdmin {
		return ErrNotGroupAdmin
	}
	return nil
}
