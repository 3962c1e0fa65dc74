package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/lib/logger/sl"
)

var (
	ErrSelfRequest    = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends = errors.New("users are already friends")
	ErrRequestExists  = errors.New("a request between these users already exists")
	ErrNotRecipient   = errors.New("only the recipient can respond to a request")
	ErrRequestClosed  = errors.New("request is no longer pending")
)

type FriendService struct {
	friends       repository.FriendRepository
	users         repository.UserRepository
	messages      repository.MessageRepository
	notifications NotificationInteractor
	log           *slog.Logger
}

func NewFriendService(
	friends repository.FriendRepository,
	users repository.UserRepository,
	messages repository.MessageRepository,
	notifications NotificationInteractor,
	log *slog.Logger,
) *FriendService {
	if log == nil {
		log = slog.Default()
	}
	return &FriendService{
		friends:       friends,
		users:         users,
		messages:      messages,
		notifications: notifications,
		log:           log,
	}
}

// SendRequest inserts a pending request. A request in either direction, or an
// existing friendship, blocks a new one.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID int64, message string) (*domain.FriendRequest, error) {
	const op = "service.friend.send_request"

	if fromID == toID {
		return nil, ErrSelfRequest
	}
	if _, err := s.users.GetByID(ctx, toID); err != nil {
		return nil, err
	}

	friends, err := s.friends.AreFriends(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	if _, err := s.friends.GetRequestBetween(ctx, fromID, toID); err == nil {
		return nil, ErrRequestExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	req := domain.NewFriendRequest(fromID, toID, message)
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		if errors.Is(err, repository.ErrRequestExists) {
			return nil, ErrRequestExists
		}
		return nil, err
	}

	if sender, err := s.users.GetByID(ctx, fromID); err == nil {
		if _, err := s.notifications.Notify(ctx, toID, "New friend request", sender.Username+" wants to be your friend"); err != nil {
			s.log.Warn("friend request notification failed", slog.String("op", op), sl.Err(err))
		}
	}

	s.log.Info("friend request sent", slog.String("op", op), slog.Int64("from", fromID), slog.Int64("to", toID))
	return req, nil
}

// Respond transitions a pending request. Accepting also creates the
// friendship row, atomically with the status change.
func (s *FriendService) Respond(ctx context.Context, userID, requestID int64, response domain.FriendRequestStatus) error {
	const op = "service.friend.respond"

	switch response {
	case domain.FriendRequestAccepted, domain.FriendRequestDeclined, domain.FriendRequestBlocked:
	default:
		return fmt.Errorf("invalid response %q", response)
	}

	req, err := s.friends.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ToUserID != userID {
		return ErrNotRecipient
	}
	if req.Status.Terminal() {
		return ErrRequestClosed
	}

	if response == domain.FriendRequestAccepted {
		if err := s.friends.AcceptRequest(ctx, requestID); err != nil {
			return err
		}
		if recipient, err := s.users.GetByID(ctx, userID); err == nil {
			if _, err := s.notifications.Notify(ctx, req.FromUserID, "Friend request accepted", recipient.Username+" accepted your friend request"); err != nil {
				s.log.Warn("accept notification failed", slog.String("op", op), sl.Err(err))
			}
		}
		s.log.Info("friend request accepted", slog.String("op", op), slog.Int64("request_id", requestID))
		return nil
	}

	return s.friends.UpdateRequestStatus(ctx, requestID, response)
}

// Relationship resolves how userID relates to otherID, in the order the
// contact card expects: friendship first, then an outgoing request's status,
// then an incoming pending request (shown as pending on both sides).
func (s *FriendService) Relationship(ctx context.Context, userID, otherID int64) (domain.RelationshipStatus, error) {
	friends, err := s.friends.AreFriends(ctx, userID, otherID)
	if err != nil {
		return "", err
	}
	if friends {
		return domain.RelationshipFriends, nil
	}

	if req, err := s.friends.GetRequestFrom(ctx, userID, otherID); err == nil {
		switch req.Status {
		case domain.FriendRequestPending:
			return domain.RelationshipPending, nil
		case domain.FriendRequestDeclined:
			return domain.RelationshipDeclined, nil
		case domain.FriendRequestBlocked:
			return domain.RelationshipBlocked, nil
		case domain.FriendRequestAccepted:
			return domain.RelationshipFriends, nil
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	if req, err := s.friends.GetRequestFrom(ctx, otherID, userID); err == nil {
		if req.Status == domain.FriendRequestPending {
			return domain.RelationshipPending, nil
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	return domain.RelationshipNone, nil
}

func (s *FriendService) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	return s.friends.AreFriends(ctx, a, b)
}

// ListFriends builds the chat list: online friends first, then by most
// recent message, then alphabetically by username. The three-level tiebreak
// keeps the ordering deterministic.
func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]*domain.FriendEntry, error) {
	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.FriendEntry, 0, len(friends))
	for _, friend := range friends {
		unread, err := s.messages.UnreadCount(ctx, userID, friend.ID)
		if err != nil {
			return nil, err
		}
		lastAt, err := s.messages.LastMessageAt(ctx, userID, friend.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &domain.FriendEntry{
			User:          friend,
			UnreadCount:   unread,
			LastMessageAt: lastAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.User.IsOnline != b.User.IsOnline {
			return a.User.IsOnline
		}
		switch {
		case a.LastMessageAt != nil && b.LastMessageAt != nil:
			if !a.LastMessageAt.Equal(*b.LastMessageAt) {
				return a.LastMessageAt.After(*b.LastMessageAt)
			}
		case a.LastMessageAt != nil:
			return true
		case b.LastMessageAt != nil:
			return false
		}
		return a.User.Username < b.User.Username
	})

	return entries, nil
}

func (s *FriendService) PendingRequests(ctx context.Context, userID int64) ([]*domain.FriendRequest, error) {
	return s.friends.ListIncomingPending(ctx, userID)
}

func (s *FriendService) PendingCount(ctx context.Context, userID int64) (int64, error) {
	return s.friends.CountIncomingPending(ctx, userID)
}

func (s *FriendService) Unfriend(ctx context.Context, userID, friendID int64) error {
	return s.friends.DeleteFriendship(ctx, userID, friendID)
}
