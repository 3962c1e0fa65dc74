package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talkline/talkline/internal/domain"
)

func TestGroupCreateMakesCreatorAdmin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteGroupRepository(db)
	alice, _ := createPair(t, db)

	group := domain.NewGroup("team", "the team", "", alice.ID)
	require.NoError(t, repo.Create(ctx, group))
	require.NotZero(t, group.ID)

	role, err := repo.MemberRole(ctx, group.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, domain.GroupRoleAdmin, role)

	stored, err := repo.GetByID(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, stored.Members, 1)
	require.NotNil(t, stored.Members[0].User)
	require.Equal(t, "alice", stored.Members[0].User.Username)
}

func TestGroupMembership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteGroupRepository(db)
	alice, bob := createPair(t, db)

	group := domain.NewGroup("team", "", "", alice.ID)
	require.NoError(t, repo.Create(ctx, group))

	require.NoError(t, repo.AddMember(ctx, group.ID, bob.ID, domain.GroupRoleMember))
	require.ErrorIs(t, repo.AddMember(ctx, group.ID, bob.ID, domain.GroupRoleMember), ErrDuplicate)

	members, err := repo.ListMembers(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	groups, err := repo.ListForUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	require.NoError(t, repo.RemoveMember(ctx, group.ID, bob.ID))
	_, err = repo.MemberRole(ctx, group.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGroupMessagesOrdered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteGroupRepository(db)
	alice, bob := createPair(t, db)

	group := domain.NewGroup("team", "", "", alice.ID)
	require.NoError(t, repo.Create(ctx, group))
	require.NoError(t, repo.AddMember(ctx, group.ID, bob.ID, domain.GroupRoleMember))

	saved, err := repo.SaveMessage(ctx, domain.NewGroupMessage(group.ID, alice.ID, "first"))
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.NotNil(t, saved.Sender)

	_, err = repo.SaveMessage(ctx, domain.NewGroupMessage(group.ID, bob.ID, "second"))
	require.NoError(t, err)

	messages, err := repo.ListMessages(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "first", messages[0].Text)
	require.Equal(t, "second", messages[1].Text)
}

func TestGroupDeactivateHidesFromLists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteGroupRepository(db)
	alice, _ := createPair(t, db)

	group := domain.NewGroup("team", "", "", alice.ID)
	require.NoError(t, repo.Create(ctx, group))

	require.NoError(t, repo.Deactivate(ctx, group.ID))

	groups, err := repo.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, groups)
}
