package service

import (
	"context"
	"log/slog"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
)

type AdminService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	log      *slog.Logger
}

func NewAdminService(users repository.UserRepository, messages repository.MessageRepository, log *slog.Logger) *AdminService {
	if log == nil {
		log = slog.Default()
	}
	return &AdminService{users: users, messages: messages, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}

func (s *AdminService) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	const op = "service.admin.set_blocked"

	if err := s.users.SetBlocked(ctx, userID, blocked); err != nil {
		return err
	}
	s.log.Info("user block flag changed", slog.String("op", op), slog.Int64("user_id", userID), slog.Bool("blocked", blocked))
	return nil
}

func (s *AdminService) Promote(ctx context.Context, userID int64) error {
	return s.users.SetAdmin(ctx, userID, true)
}

// DeleteUser removes the account and all rows referencing it.
func (s *AdminService) DeleteUser(ctx context.Context, userID int64) error {
	const op = "service.admin.delete_user"

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info("user deleted", slog.String("op", op), slog.Int64("user_id", userID))
	return nil
}

func (s *AdminService) Totals(ctx context.Context) (*AdminTotals, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminTotals{Users: users, Messages: messages}, nil
}
