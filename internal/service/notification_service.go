package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
)

type NotificationService struct {
	notifications repository.NotificationRepository
	log           *slog.Logger
}

func NewNotificationService(notifications repository.NotificationRepository, log *slog.Logger) *NotificationService {
	if log == nil {
		log = slog.Default()
	}
	return &NotificationService{notifications: notifications, log: log}
}

// Broadcast creates a notification every user sees.
func (s *NotificationService) Broadcast(ctx context.Context, title, message string) (*domain.Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title is required")
	}

	n := domain.NewGlobalNotification(title, message)
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) Notify(ctx context.Context, targetUserID int64, title, message string) (*domain.Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title is required")
	}

	n := domain.NewUserNotification(targetUserID, title, message)
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	return s.notifications.ListForUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return s.notifications.MarkRead(ctx, id)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.UnreadCount(ctx, userID)
}
