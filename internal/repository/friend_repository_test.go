package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

func createPair(t *testing.T, db *gorm.DB) (*domain.User, *domain.User) {
	t.Helper()
	ctx := context.Background()
	users := NewSqliteUserRepository(db)

	alice := testUser("alice")
	bob := testUser("bob")
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))
	return alice, bob
}

func TestFriendRequestDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteFriendRepository(db)
	alice, bob := createPair(t, db)

	require.NoError(t, repo.CreateRequest(ctx, domain.NewFriendRequest(alice.ID, bob.ID, "hi")))

	err := repo.CreateRequest(ctx, domain.NewFriendRequest(alice.ID, bob.ID, "hi again"))
	require.ErrorIs(t, err, ErrRequestExists)
}

func TestAcceptRequestCreatesSingleNormalizedFriendship(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteFriendRepository(db)
	alice, bob := createPair(t, db)

	// bob sends to alice, so the request direction is opposite to ID order
	req := domain.NewFriendRequest(bob.ID, alice.ID, "hi")
	require.NoError(t, repo.CreateRequest(ctx, req))
	require.NoError(t, repo.AcceptRequest(ctx, req.ID))

	stored, err := repo.GetRequestByID(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.FriendRequestAccepted, stored.Status)

	fs, err := repo.GetFriendship(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Less(t, fs.UserID1, fs.UserID2)

	ok, err := repo.AreFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.AreFriends(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, ok)

	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAcceptRequestIdempotentFriendship(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteFriendRepository(db)
	alice, bob := createPair(t, db)

	req := domain.NewFriendRequest(alice.ID, bob.ID, "")
	require.NoError(t, repo.CreateRequest(ctx, req))
	require.NoError(t, repo.AcceptRequest(ctx, req.ID))
	require.NoError(t, repo.AcceptRequest(ctx, req.ID))

	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestGetRequestBetweenEitherDirection(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteFriendRepository(db)
	alice, bob := createPair(t, db)

	req := domain.NewFriendRequest(alice.ID, bob.ID, "hi")
	require.NoError(t, repo.CreateRequest(ctx, req))

	found, err := repo.GetRequestBetween(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, req.ID, found.ID)

	_, err = repo.GetRequestFrom(ctx, bob.ID, alice.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListIncomingPendingPreloadsSender(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteFriendRepository(db)
	alice, bob := createPair(t, db)

	require.NoError(t, repo.CreateRequest(ctx, domain.NewFriendRequest(alice.ID, bob.ID, "hi")))

	pending, err := repo.ListIncomingPending(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].From)
	require.Equal(t, "alice", pending[0].From.Username)

	count, err := repo.CountIncomingPending(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// nothing incoming for the sender
	count, err = repo.CountIncomingPending(ctx, alice.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestDeleteFriendshipClearsRequests(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteFriendRepository(db)
	alice, bob := createPair(t, db)

	req := domain.NewFriendRequest(alice.ID, bob.ID, "")
	require.NoError(t, repo.CreateRequest(ctx, req))
	require.NoError(t, repo.AcceptRequest(ctx, req.ID))

	require.NoError(t, repo.DeleteFriendship(ctx, bob.ID, alice.ID))

	ok, err := repo.AreFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, ok)

	// a fresh request between the pair must be possible again
	require.NoError(t, repo.CreateRequest(ctx, domain.NewFriendRequest(bob.ID, alice.ID, "round two")))
}

func TestListFriendsBothSides(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteFriendRepository(db)
	users := NewSqliteUserRepository(db)
	alice, bob := createPair(t, db)

	carol := testUser("carol")
	require.NoError(t, users.Create(ctx, carol))

	for _, pair := range [][2]int64{{alice.ID, bob.ID}, {carol.ID, alice.ID}} {
		req := domain.NewFriendRequest(pair[0], pair[1], "")
		require.NoError(t, repo.CreateRequest(ctx, req))
		require.NoError(t, repo.AcceptRequest(ctx, req.ID))
	}

	list, err := repo.ListFriends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	list, err = repo.ListFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, alice.ID, list[0].ID)
}
