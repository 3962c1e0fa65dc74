package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talkline/talkline/internal/domain"
)

func TestCallCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteCallRepository(db)
	alice, bob := createPair(t, db)

	call := domain.NewCall(alice.ID, bob.ID, domain.CallTypeVoice)
	require.NoError(t, repo.Create(ctx, call))

	stored, err := repo.GetByID(ctx, call.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CallStatusOutgoing, stored.Status)
	require.Nil(t, stored.EndedAt)

	_, err = repo.GetByID(ctx, "no-such-call")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCallUpdateStatusStampsEnd(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteCallRepository(db)
	alice, bob := createPair(t, db)

	call := domain.NewCall(alice.ID, bob.ID, domain.CallTypeVideo)
	require.NoError(t, repo.Create(ctx, call))

	require.NoError(t, repo.UpdateStatus(ctx, call.ID, domain.CallStatusEnded, 42))

	stored, err := repo.GetByID(ctx, call.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CallStatusEnded, stored.Status)
	require.Equal(t, int64(42), stored.Duration)
	require.NotNil(t, stored.EndedAt)
}

func TestCallListForUserEitherSide(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSqliteCallRepository(db)
	users := NewSqliteUserRepository(db)
	alice, bob := createPair(t, db)

	carol := testUser("carol")
	require.NoError(t, users.Create(ctx, carol))

	require.NoError(t, repo.Create(ctx, domain.NewCall(alice.ID, bob.ID, domain.CallTypeVoice)))
	require.NoError(t, repo.Create(ctx, domain.NewCall(carol.ID, alice.ID, domain.CallTypeVoice)))
	require.NoError(t, repo.Create(ctx, domain.NewCall(bob.ID, carol.ID, domain.CallTypeVideo)))

	calls, err := repo.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, calls, 2)
}
