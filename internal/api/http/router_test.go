package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/talkline/talkline/internal/auth"
	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
)

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

type apiHarness struct {
	router *gin.Engine
	users  repository.UserRepository
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := repository.Open(":memory:")
	require.NoError(t, err)

	// one connection, or each pooled conn would get its own memory db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db, log))

	tokens := auth.NewJWTService("test-secret", "talkline-test", time.Hour)

	userRepo := repository.NewSqliteUserRepository(db)
	friendRepo := repository.NewSqliteFriendRepository(db)
	messageRepo := repository.NewSqliteMessageRepository(db)
	groupRepo := repository.NewSqliteGroupRepository(db)
	callRepo := repository.NewSqliteCallRepository(db)
	statusRepo := repository.NewSqliteStatusRepository(db)
	notificationRepo := repository.NewSqliteNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, log)
	userService := service.NewUserService(userRepo, tokens, log)
	friendService := service.NewFriendService(friendRepo, userRepo, messageRepo, notificationService, log)
	chatService := service.NewChatService(messageRepo, friendRepo, log)
	groupService := service.NewGroupService(groupRepo, userRepo, log)
	callService := service.NewCallService(callRepo, userRepo, notificationService, time.Minute, log)
	statusService := service.NewStatusService(statusRepo, friendRepo, 12*time.Hour, log)
	adminService := service.NewAdminService(userRepo, messageRepo, log)

	controllers := Controllers{
		Auth:          NewAuthController(userService),
		Users:         NewUserController(userService),
		Friends:       NewFriendController(friendService),
		Chats:         NewChatController(chatService),
		Groups:        NewGroupController(groupService),
		Statuses:      NewStatusController(statusService),
		Calls:         NewCallController(callService, log),
		Notifications: NewNotificationController(notificationService),
		Admin:         NewAdminController(adminService, statusService, notificationService),
	}

	return &apiHarness{
		router: SetupRouter(tokens, []string{"http://localhost:3000"}, controllers),
		users:  userRepo,
	}
}

func (h *apiHarness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (h *apiHarness) signup(t *testing.T, username string) (int64, string) {
	t.Helper()

	w := h.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    username + "@example.com",
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode(t, w)["user"].(map[string]any)
	id := int64(user["id"].(float64))

	w = h.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return id, decode(t, w)["token"].(string)
}

func TestAuthFlow(t *testing.T) {
	h := newAPIHarness(t)

	_, token := h.signup(t, "alice")
	require.NotEmpty(t, token)

	// duplicate registration is a conflict
	w := h.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = h.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	h := newAPIHarness(t)

	w := h.do(t, http.MethodGet, "/api/friends", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, http.MethodGet, "/api/friends", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFriendAndChatFlow(t *testing.T) {
	h := newAPIHarness(t)

	aliceID, aliceToken := h.signup(t, "alice")
	bobID, bobToken := h.signup(t, "bob")

	// messaging before friendship is forbidden
	w := h.do(t, http.MethodPost, "/api/chats/"+itoa(bobID)+"/messages", aliceToken, gin.H{"message": "hi"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(t, http.MethodPost, "/api/friends/requests", aliceToken, gin.H{"to_user_id": bobID, "message": "hi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reqID := int64(decode(t, w)["request"].(map[string]any)["id"].(float64))

	w = h.do(t, http.MethodGet, "/api/friends/requests/count", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, decode(t, w)["count"].(float64))

	w = h.do(t, http.MethodPost, "/api/friends/requests/"+itoa(reqID)+"/respond", bobToken, gin.H{"response": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(t, http.MethodGet, "/api/friends/relationship/"+itoa(bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "friends", decode(t, w)["relationship"])

	w = h.do(t, http.MethodPost, "/api/chats/"+itoa(bobID)+"/messages", aliceToken, gin.H{"message": "hi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(t, http.MethodGet, "/api/chats/"+itoa(aliceID)+"/unread", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, decode(t, w)["count"].(float64))

	w = h.do(t, http.MethodPost, "/api/chats/"+itoa(aliceID)+"/open", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodGet, "/api/chats/unread", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 0, decode(t, w)["count"].(float64))
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	h := newAPIHarness(t)

	aliceID, aliceToken := h.signup(t, "alice")
	bobID, _ := h.signup(t, "bob")

	w := h.do(t, http.MethodGet, "/api/admin/users", aliceToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// promote alice directly, then log in again for an admin token
	require.NoError(t, h.users.SetAdmin(context.Background(), aliceID, true))
	w = h.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	adminToken := decode(t, w)["token"].(string)

	w = h.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodPost, "/api/admin/users/"+itoa(bobID)+"/block", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "bob@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(t, http.MethodPost, "/api/admin/notifications/broadcast", adminToken, gin.H{
		"title":   "maintenance",
		"message": "back soon",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodGet, "/api/admin/totals", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	totals := decode(t, w)["totals"].(map[string]any)
	require.EqualValues(t, 2, totals["users"].(float64))
}

func TestHealthz(t *testing.T) {
	h := newAPIHarness(t)

	w := h.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
