package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/talkline/talkline/internal/auth"
	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
)

type testEnv struct {
	db *gorm.DB

	users         repository.UserRepository
	friends       repository.FriendRepository
	messages      repository.MessageRepository
	groups        repository.GroupRepository
	calls         repository.CallRepository
	statuses      repository.StatusRepository
	notifications repository.NotificationRepository

	userService         *UserService
	friendService       *FriendService
	chatService         *ChatService
	groupService        *GroupService
	statusService       *StatusService
	notificationService *NotificationService
	adminService        *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := repository.Open(":memory:")
	require.NoError(t, err)

	// one connection, or each pooled conn would get its own memory db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db, log))

	env := &testEnv{
		db:            db,
		users:         repository.NewSqliteUserRepository(db),
		friends:       repository.NewSqliteFriendRepository(db),
		messages:      repository.NewSqliteMessageRepository(db),
		groups:        repository.NewSqliteGroupRepository(db),
		calls:         repository.NewSqliteCallRepository(db),
		statuses:      repository.NewSqliteStatusRepository(db),
		notifications: repository.NewSqliteNotificationRepository(db),
	}

	tokens := auth.NewJWTService("test-secret", "talkline-test", time.Hour)

	env.notificationService = NewNotificationService(env.notifications, log)
	env.userService = NewUserService(env.users, tokens, log)
	env.friendService = NewFriendService(env.friends, env.users, env.messages, env.notificationService, log)
	env.chatService = NewChatService(env.messages, env.friends, log)
	env.groupService = NewGroupService(env.groups, env.users, log)
	env.statusService = NewStatusService(env.statuses, env.friends, domain.DefaultStatusTTL, log)
	env.adminService = NewAdminService(env.users, env.messages, log)

	return env
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := e.userService.Register(context.Background(), username+"@example.com", username, "password123")
	require.NoError(t, err)
	return user
}

func (e *testEnv) befriend(t *testing.T, a, b *domain.User) {
	t.Helper()
	ctx := context.Background()
	req, err := e.friendService.SendRequest(ctx, a.ID, b.ID, "")
	require.NoError(t, err)
	require.NoError(t, e.friendService.Respond(ctx, b.ID, req.ID, domain.FriendRequestAccepted))
}
