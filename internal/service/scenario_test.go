package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talkline/talkline/internal/domain"
)

// Walks the happy path end to end: sign up, request, accept, chat, read.
func TestTwoUsersBecomeFriendsAndChat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	req, err := env.friendService.SendRequest(ctx, alice.ID, bob.ID, "hi, it's alice")
	require.NoError(t, err)

	pending, err := env.friendService.PendingRequests(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "hi, it's alice", pending[0].Message)

	require.NoError(t, env.friendService.Respond(ctx, bob.ID, req.ID, domain.FriendRequestAccepted))

	for _, pair := range [][2]int64{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		ok, err := env.friendService.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, err = env.chatService.Send(ctx, alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	entries, err := env.friendService.ListFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(1), entries[0].UnreadCount)

	_, err = env.chatService.OpenConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	entries, err = env.friendService.ListFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, entries[0].UnreadCount)

	total, err := env.chatService.UnreadTotal(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestAdminTotalsAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	env.befriend(t, alice, bob)

	_, err := env.chatService.Send(ctx, alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	totals, err := env.adminService.Totals(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), totals.Users)
	require.Equal(t, int64(1), totals.Messages)

	require.NoError(t, env.adminService.DeleteUser(ctx, alice.ID))

	totals, err = env.adminService.Totals(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), totals.Users)
	require.Zero(t, totals.Messages)

	// blocked users stay visible to admins
	require.NoError(t, env.adminService.SetBlocked(ctx, bob.ID, true))
	users, err := env.adminService.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.True(t, users[0].IsBlocked)
}
