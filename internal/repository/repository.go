package repository

import (
	"context"
	"errors"
	"time"

	"github.com/talkline/talkline/internal/domain"
)

var (
	// ErrNotInitialized is returned when a repository is constructed without
	// a database handle.
	ErrNotInitialized = errors.New("database not initialized")

	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")

	ErrUserExists    = errors.New("user with email or username already exists")
	ErrRequestExists = errors.New("friend request already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, excludeID int64) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	Search(ctx context.Context, query string, excludeID int64) ([]*domain.User, error)
	SetOnline(ctx context.Context, id int64, online bool) error
	UpdateProfile(ctx context.Context, id int64, username, profilePicture string) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	SetAdmin(ctx context.Context, id int64, admin bool) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type FriendRepository interface {
	CreateRequest(ctx context.Context, req *domain.FriendRequest) error
	GetRequestByID(ctx context.Context, id int64) (*domain.FriendRequest, error)
	GetRequestBetween(ctx context.Context, a, b int64) (*domain.FriendRequest, error)
	GetRequestFrom(ctx context.Context, from, to int64) (*domain.FriendRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status domain.FriendRequestStatus) error
	AcceptRequest(ctx context.Context, id int64) error
	ListIncomingPending(ctx context.Context, userID int64) ([]*domain.FriendRequest, error)
	CountIncomingPending(ctx context.Context, userID int64) (int64, error)
	GetFriendship(ctx context.Context, a, b int64) (*domain.Friendship, error)
	AreFriends(ctx context.Context, a, b int64) (bool, error)
	ListFriends(ctx context.Context, userID int64) ([]*domain.User, error)
	DeleteFriendship(ctx context.Context, a, b int64) error
}

type MessageRepository interface {
	Save(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	History(ctx context.Context, a, b int64) ([]*domain.Message, error)
	MarkRead(ctx context.Context, messageID int64) error
	MarkConversationRead(ctx context.Context, selfID, friendID int64) error
	UnreadCount(ctx context.Context, selfID, friendID int64) (int64, error)
	UnreadTotal(ctx context.Context, selfID int64) (int64, error)
	LastMessageAt(ctx context.Context, a, b int64) (*time.Time, error)
	Count(ctx context.Context) (int64, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Group, error)
	AddMember(ctx context.Context, groupID, userID int64, role domain.GroupRole) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	ListMembers(ctx context.Context, groupID int64) ([]*domain.GroupMember, error)
	MemberRole(ctx context.Context, groupID, userID int64) (domain.GroupRole, error)
	SaveMessage(ctx context.Context, msg *domain.GroupMessage) (*domain.GroupMessage, error)
	ListMessages(ctx context.Context, groupID int64) ([]*domain.GroupMessage, error)
	Deactivate(ctx context.Context, id int64) error
}

type CallRepository interface {
	Create(ctx context.Context, call *domain.Call) error
	GetByID(ctx context.Context, id string) (*domain.Call, error)
	UpdateStatus(ctx context.Context, id string, status domain.CallStatus, duration int64) error
	ListForUser(ctx context.Context, userID int64) ([]*domain.Call, error)
}

type StatusRepository interface {
	Create(ctx context.Context, status *domain.Status) error
	GetByID(ctx context.Context, id int64) (*domain.Status, error)
	ListActiveForUser(ctx context.Context, userID int64) ([]*domain.Status, error)
	ListActiveForUsers(ctx context.Context, userIDs []int64) ([]*domain.Status, error)
	RecordView(ctx context.Context, statusID, viewerID int64) error
	HasViewed(ctx context.Context, statusID, viewerID int64) (bool, error)
	ViewCount(ctx context.Context, statusID int64) (int64, error)
	ListViewers(ctx context.Context, statusID int64) ([]*domain.StatusView, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
