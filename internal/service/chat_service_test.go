package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talkline/talkline/internal/repository"
)

func TestSendRequiresFriendship(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	_, err := env.chatService.Send(ctx, alice.ID, bob.ID, "hi")
	require.ErrorIs(t, err, ErrNotFriends)

	env.befriend(t, alice, bob)

	msg, err := env.chatService.Send(ctx, alice.ID, bob.ID, "  hi  ")
	require.NoError(t, err)
	require.Equal(t, "hi", msg.Text)
	require.NotZero(t, msg.ID)
}

func TestSendValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	env.befriend(t, alice, bob)

	_, err := env.chatService.Send(ctx, alice.ID, bob.ID, "   ")
	require.Error(t, err)

	_, err = env.chatService.Send(ctx, alice.ID, bob.ID, strings.Repeat("x", maxMessageLength+1))
	require.Error(t, err)
}

func TestOpenConversationClearsUnread(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	env.befriend(t, alice, bob)

	_, err := env.chatService.Send(ctx, alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	count, err := env.chatService.UnreadCount(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	messages, err := env.chatService.OpenConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.True(t, messages[0].IsRead)

	count, err = env.chatService.UnreadCount(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// the sender's own view never counts as unread
	count, err = env.chatService.UnreadCount(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestMarkMessageReadReceiverOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	env.befriend(t, alice, bob)

	msg, err := env.chatService.Send(ctx, alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	err = env.chatService.MarkMessageRead(ctx, alice.ID, msg.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, env.chatService.MarkMessageRead(ctx, bob.ID, msg.ID))

	total, err := env.chatService.UnreadTotal(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, total)
}
