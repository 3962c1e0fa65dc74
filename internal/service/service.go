package service

import (
	"context"

	"github.com/talkline/talkline/internal/domain"
)

type UserInteractor interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, userID int64) error
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, excludeID int64) ([]*domain.User, error)
	Search(ctx context.Context, query string, excludeID int64) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, username, profilePicture string) error
}

type FriendInteractor interface {
	SendRequest(ctx context.Context, fromID, toID int64, message string) (*domain.FriendRequest, error)
	Respond(ctx context.Context, userID, requestID int64, response domain.FriendRequestStatus) error
	Relationship(ctx context.Context, userID, otherID int64) (domain.RelationshipStatus, error)
	AreFriends(ctx context.Context, a, b int64) (bool, error)
	ListFriends(ctx context.Context, userID int64) ([]*domain.FriendEntry, error)
	PendingRequests(ctx context.Context, userID int64) ([]*domain.FriendRequest, error)
	PendingCount(ctx context.Context, userID int64) (int64, error)
	Unfriend(ctx context.Context, userID, friendID int64) error
}

type ChatInteractor interface {
	Send(ctx context.Context, senderID, receiverID int64, text string) (*domain.Message, error)
	History(ctx context.Context, userID, otherID int64) ([]*domain.Message, error)
	OpenConversation(ctx context.Context, userID, otherID int64) ([]*domain.Message, error)
	MarkMessageRead(ctx context.Context, userID, messageID int64) error
	UnreadCount(ctx context.Context, userID, friendID int64) (int64, error)
	UnreadTotal(ctx context.Context, userID int64) (int64, error)
}

type GroupInteractor interface {
	Create(ctx context.Context, creatorID int64, name, description, avatar string) (*domain.Group, error)
	Get(ctx context.Context, userID, groupID int64) (*domain.Group, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Group, error)
	AddMember(ctx context.Context, actorID, groupID, userID int64) error
	RemoveMember(ctx context.Context, actorID, groupID, userID int64) error
	SendMessage(ctx context.Context, senderID, groupID int64, text string) (*domain.GroupMessage, error)
	Messages(ctx context.Context, userID, groupID int64) ([]*domain.GroupMessage, error)
	Deactivate(ctx context.Context, actorID, groupID int64) error
}

type StatusInteractor interface {
	Create(ctx context.Context, userID int64, statusType domain.StatusType, content, caption string) (*domain.Status, error)
	Feed(ctx context.Context, viewerID int64) ([]*domain.UserStatuses, error)
	Own(ctx context.Context, userID int64) ([]*domain.Status, error)
	View(ctx context.Context, viewerID, statusID int64) error
	Viewers(ctx context.Context, ownerID, statusID int64) ([]*domain.StatusView, error)
	ViewCount(ctx context.Context, statusID int64) (int64, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

type CallInteractor interface {
	Start(ctx context.Context, callerID, receiverID int64, callType domain.CallType) (*domain.CallSession, error)
	Answer(ctx context.Context, userID int64) (*domain.CallSession, error)
	Decline(ctx context.Context, userID int64) error
	End(ctx context.Context, userID int64) (*domain.Call, error)
	ActiveSession() *domain.CallSession
	History(ctx context.Context, userID int64) ([]*domain.Call, error)
	Subscribe(fn CallEventFunc) int64
	Unsubscribe(id int64)
}

type NotificationInteractor interface {
	Broadcast(ctx context.Context, title, message string) (*domain.Notification, error)
	Notify(ctx context.Context, targetUserID int64, title, message string) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type AdminInteractor interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
	Promote(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) error
	Totals(ctx context.Context) (*AdminTotals, error)
}

// AdminTotals backs the admin dashboard counters.
type AdminTotals struct {
	Users    int64 `json:"users"`
	Messages int64 `json:"messages"`
}
