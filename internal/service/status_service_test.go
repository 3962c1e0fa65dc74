package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
)

func TestStatusCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	_, err := env.statusService.Create(ctx, alice.ID, domain.StatusType("poll"), "content", "")
	require.Error(t, err)

	_, err = env.statusService.Create(ctx, alice.ID, domain.StatusTypeText, "   ", "")
	require.Error(t, err)

	status, err := env.statusService.Create(ctx, alice.ID, domain.StatusTypeText, "hello", "cap")
	require.NoError(t, err)
	require.WithinDuration(t, status.Timestamp.Add(domain.DefaultStatusTTL), status.ExpiresAt, time.Second)
}

func TestStatusFeedOwnFirstThenFriends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")
	env.befriend(t, alice, bob)

	// carol is not a friend; her statuses stay out of alice's feed
	_, err := env.statusService.Create(ctx, carol.ID, domain.StatusTypeText, "carol status", "")
	require.NoError(t, err)
	_, err = env.statusService.Create(ctx, bob.ID, domain.StatusTypeText, "bob status", "")
	require.NoError(t, err)
	_, err = env.statusService.Create(ctx, alice.ID, domain.StatusTypeText, "alice status", "")
	require.NoError(t, err)

	feed, err := env.statusService.Feed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, alice.ID, feed[0].User.ID)
	require.Equal(t, bob.ID, feed[1].User.ID)
	require.Len(t, feed[0].Statuses, 1)
}

func TestStatusViewRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	env.befriend(t, alice, bob)

	status, err := env.statusService.Create(ctx, alice.ID, domain.StatusTypeText, "hello", "")
	require.NoError(t, err)

	// owner opening their own status is not a view
	require.NoError(t, env.statusService.View(ctx, alice.ID, status.ID))
	count, err := env.statusService.ViewCount(ctx, status.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// repeat views count once
	require.NoError(t, env.statusService.View(ctx, bob.ID, status.ID))
	require.NoError(t, env.statusService.View(ctx, bob.ID, status.ID))
	count, err = env.statusService.ViewCount(ctx, status.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// only the owner sees the viewer list
	_, err = env.statusService.Viewers(ctx, bob.ID, status.ID)
	require.ErrorIs(t, err, ErrNotStatusOwner)

	viewers, err := env.statusService.Viewers(ctx, alice.ID, status.ID)
	require.NoError(t, err)
	require.Len(t, viewers, 1)
	require.Equal(t, bob.ID, viewers[0].ViewerID)
}

func TestStatusViewExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	stale := domain.NewStatus(alice.ID, domain.StatusTypeText, "stale", "", 0)
	stale.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, env.statuses.Create(ctx, stale))

	err := env.statusService.View(ctx, bob.ID, stale.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStatusCleanupExpiredViaService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	stale := domain.NewStatus(alice.ID, domain.StatusTypeText, "stale", "", 0)
	stale.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, env.statuses.Create(ctx, stale))

	swept, err := env.statusService.CleanupExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), swept)
}
