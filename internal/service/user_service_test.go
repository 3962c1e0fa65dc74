package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talkline/talkline/internal/repository"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.userService.Register(ctx, "Alice@Example.com", "alice", "password123")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEqual(t, "password123", user.PasswordHash)

	loggedIn, token, err := env.userService.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, loggedIn.IsOnline)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.userService.Register(ctx, "", "alice", "password123")
	require.Error(t, err)

	_, err = env.userService.Register(ctx, "alice@example.com", "alice", "short")
	require.Error(t, err)

	env.register(t, "bob")
	_, err = env.userService.Register(ctx, "bob@example.com", "bob", "password123")
	require.ErrorIs(t, err, repository.ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	_, _, err := env.userService.Login(ctx, "alice@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.userService.Login(ctx, "nobody@example.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlockedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	require.NoError(t, env.adminService.SetBlocked(ctx, alice.ID, true))

	_, _, err := env.userService.Login(ctx, "alice@example.com", "password123")
	require.ErrorIs(t, err, ErrUserBlocked)
}

func TestLogoutGoesOffline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	user, _, err := env.userService.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, env.userService.Logout(ctx, user.ID))

	stored, err := env.userService.Get(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, stored.IsOnline)
}
