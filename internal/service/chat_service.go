package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
)

var ErrNotFriends = errors.New("users are not friends")

const maxMessageLength = 4000

type ChatService struct {
	messages repository.MessageRepository
	friends  repository.FriendRepository
	log      *slog.Logger
}

func NewChatService(messages repository.MessageRepository, friends repository.FriendRepository, log *slog.Logger) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{messages: messages, friends: friends, log: log}
}

// Send stores a message between friends and returns the persisted row.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID int64, text string) (*domain.Message, error) {
	const op = "service.chat.send"

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("message is empty")
	}
	if len(text) > maxMessageLength {
		return nil, errors.New("message is too long")
	}

	friends, err := s.friends.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrNotFriends
	}

	msg, err := s.messages.Save(ctx, domain.NewMessage(senderID, receiverID, text))
	if err != nil {
		return nil, err
	}

	s.log.Info("message sent", slog.String("op", op), slog.Int64("message_id", msg.ID))
	return msg, nil
}

func (s *ChatService) History(ctx context.Context, userID, otherID int64) ([]*domain.Message, error) {
	return s.messages.History(ctx, userID, otherID)
}

// OpenConversation returns the history and marks everything the other side
// sent as read, which is what happens when the chat screen opens.
func (s *ChatService) OpenConversation(ctx context.Context, userID, otherID int64) ([]*domain.Message, error) {
	if err := s.messages.MarkConversationRead(ctx, userID, otherID); err != nil {
		return nil, err
	}
	return s.messages.History(ctx, userID, otherID)
}

// MarkMessageRead flips a single message; only the receiver may do it.
func (s *ChatService) MarkMessageRead(ctx context.Context, userID, messageID int64) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.ReceiverID != userID {
		return repository.ErrNotFound
	}
	return s.messages.MarkRead(ctx, messageID)
}

func (s *ChatService) UnreadCount(ctx context.Context, userID, friendID int64) (int64, error) {
	return s.messages.UnreadCount(ctx, userID, friendID)
}

func (s *ChatService) UnreadTotal(ctx context.Context, userID int64) (int64, error) {
	return s.messages.UnreadTotal(ctx, userID)
}
