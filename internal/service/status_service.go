package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
)

var ErrNotStatusOwner = errors.New("only the status owner can see its viewers")

type StatusService struct {
	statuses repository.StatusRepository
	friends  repository.FriendRepository
	ttl      time.Duration
	log      *slog.Logger
}

func NewStatusService(statuses repository.StatusRepository, friends repository.FriendRepository, ttl time.Duration, log *slog.Logger) *StatusService {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = domain.DefaultStatusTTL
	}
	return &StatusService{statuses: statuses, friends: friends, ttl: ttl, log: log}
}

func (s *StatusService) Create(ctx context.Context, userID int64, statusType domain.StatusType, content, caption string) (*domain.Status, error) {
	const op = "service.status.create"

	switch statusType {
	case domain.StatusTypeText, domain.StatusTypeImage, domain.StatusTypeVideo:
	default:
		return nil, errors.New("invalid status type")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("status content is required")
	}

	status := domain.NewStatus(userID, statusType, content, caption, s.ttl)
	if err := s.statuses.Create(ctx, status); err != nil {
		return nil, err
	}

	s.log.Info("status created", slog.String("op", op), slog.Int64("status_id", status.ID))
	return status, nil
}

// Feed returns the viewer's own active statuses plus their friends',
// grouped per user, own group first.
func (s *StatusService) Feed(ctx context.Context, viewerID int64) ([]*domain.UserStatuses, error) {
	friends, err := s.friends.ListFriends(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(friends)+1)
	userIDs = append(userIDs, viewerID)
	for _, friend := range friends {
		userIDs = append(userIDs, friend.ID)
	}

	statuses, err := s.statuses.ListActiveForUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64]*domain.UserStatuses)
	order := make([]int64, 0, len(userIDs))
	for _, status := range statuses {
		entry, ok := grouped[status.UserID]
		if !ok {
			entry = &domain.UserStatuses{User: status.Owner}
			grouped[status.UserID] = entry
			order = append(order, status.UserID)
		}
		entry.Statuses = append(entry.Statuses, status)
	}

	feed := make([]*domain.UserStatuses, 0, len(grouped))
	if own, ok := grouped[viewerID]; ok {
		feed = append(feed, own)
	}
	for _, id := range order {
		if id == viewerID {
			continue
		}
		feed = append(feed, grouped[id])
	}
	return feed, nil
}

func (s *StatusService) Own(ctx context.Context, userID int64) ([]*domain.Status, error) {
	return s.statuses.ListActiveForUser(ctx, userID)
}

// View records a view once per viewer; re-views are ignored. The owner's own
// opens are not recorded.
func (s *StatusService) View(ctx context.Context, viewerID, statusID int64) error {
	status, err := s.statuses.GetByID(ctx, statusID)
	if err != nil {
		return err
	}
	if status.UserID == viewerID {
		return nil
	}
	if status.Expired() {
		return repository.ErrNotFound
	}
	return s.statuses.RecordView(ctx, statusID, viewerID)
}

func (s *StatusService) Viewers(ctx context.Context, ownerID, statusID int64) ([]*domain.StatusView, error) {
	status, err := s.statuses.GetByID(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if status.UserID != ownerID {
		return nil, ErrNotStatusOwner
	}
	return s.statuses.ListViewers(ctx, statusID)
}

func (s *StatusService) ViewCount(ctx context.Context, statusID int64) (int64, error) {
	return s.statuses.ViewCount(ctx, statusID)
}

// CleanupExpired is invoked by an external scheduler or the admin API; reads
// do not depend on it.
func (s *StatusService) CleanupExpired(ctx context.Context) (int64, error) {
	const op = "service.status.cleanup"

	swept, err := s.statuses.CleanupExpired(ctx)
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		s.log.Info("expired statuses swept", slog.String("op", op), slog.Int64("count", swept))
	}
	return swept, nil
}
