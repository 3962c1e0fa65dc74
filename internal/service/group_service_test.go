package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupCreateAndMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")

	group, err := env.groupService.Create(ctx, alice.ID, "team", "the team", "")
	require.NoError(t, err)

	// only admins add members
	err = env.groupService.AddMember(ctx, bob.ID, group.ID, carol.ID)
	require.ErrorIs(t, err, ErrNotMember)

	require.NoError(t, env.groupService.AddMember(ctx, alice.ID, group.ID, bob.ID))

	err = env.groupService.AddMember(ctx, bob.ID, group.ID, carol.ID)
	require.ErrorIs(t, err, ErrNotGroupAdmin)

	stored, err := env.groupService.Get(ctx, bob.ID, group.ID)
	require.NoError(t, err)
	require.Len(t, stored.Members, 2)

	_, err = env.groupService.Get(ctx, carol.ID, group.ID)
	require.ErrorIs(t, err, ErrNotMember)
}

func TestGroupCreateRequiresName(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	_, err := env.groupService.Create(context.Background(), alice.ID, "   ", "", "")
	require.Error(t, err)
}

func TestGroupMessagingMembersOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	group, err := env.groupService.Create(ctx, alice.ID, "team", "", "")
	require.NoError(t, err)

	_, err = env.groupService.SendMessage(ctx, bob.ID, group.ID, "hi")
	require.ErrorIs(t, err, ErrNotMember)

	require.NoError(t, env.groupService.AddMember(ctx, alice.ID, group.ID, bob.ID))

	msg, err := env.groupService.SendMessage(ctx, bob.ID, group.ID, "hi all")
	require.NoError(t, err)
	require.NotNil(t, msg.Sender)
	require.Equal(t, "bob", msg.Sender.Username)

	messages, err := env.groupService.Messages(ctx, alice.ID, group.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestGroupLeaveAndRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")

	group, err := env.groupService.Create(ctx, alice.ID, "team", "", "")
	require.NoError(t, err)
	require.NoError(t, env.groupService.AddMember(ctx, alice.ID, group.ID, bob.ID))
	require.NoError(t, env.groupService.AddMember(ctx, alice.ID, group.ID, carol.ID))

	// a member can leave but not remove others
	err = env.groupService.RemoveMember(ctx, bob.ID, group.ID, carol.ID)
	require.ErrorIs(t, err, ErrNotGroupAdmin)
	require.NoError(t, env.groupService.RemoveMember(ctx, bob.ID, group.ID, bob.ID))

	// an admin removes anyone
	require.NoError(t, env.groupService.RemoveMember(ctx, alice.ID, group.ID, carol.ID))

	stored, err := env.groupService.Get(ctx, alice.ID, group.ID)
	require.NoError(t, err)
	require.Len(t, stored.Members, 1)
}

func TestGroupDeactivateAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	group, err := env.groupService.Create(ctx, alice.ID, "team", "", "")
	require.NoError(t, err)
	require.NoError(t, env.groupService.AddMember(ctx, alice.ID, group.ID, bob.ID))

	require.ErrorIs(t, env.groupService.Deactivate(ctx, bob.ID, group.ID), ErrNotGroupAdmin)
	require.NoError(t, env.groupService.Deactivate(ctx, alice.ID, group.ID))

	groups, err := env.groupService.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, groups)
}
