package domain

import (
	"time"
)

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
	FriendRequestBlocked  FriendRequestStatus = "blocked"
)

// Terminal reports whether no further transition is allowed from the status.
func (s FriendRequestStatus) Terminal() bool {
	return s != FriendRequestPending
}

// RelationshipStatus is the UI-facing resolution of how two users relate.
type RelationshipStatus string

const (
	RelationshipNone     RelationshipStatus = "none"
	RelationshipPending  RelationshipStatus = "pending"
	RelationshipFriends  RelationshipStatus = "friends"
	RelationshipDeclined RelationshipStatus = "declined"
	RelationshipBlocked  RelationshipStatus = "blocked"
)

// FriendRequest is one outstanding request row. At most one row may exist
// per ordered (from, to) pair.
type FriendRequest struct {
	ID         int64               `json:"id"`
	FromUserID int64               `json:"from_user_id"`
	ToUserID   int64               `json:"to_user_id"`
	Message    string              `json:"message,omitempty"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`

	From *User `json:"from,omitempty"`
}

func NewFriendRequest(fromUserID, toUserID int64, message string) *FriendRequest {
	return &FriendRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Message:    message,
		Status:     FriendRequestPending,
		CreatedAt:  time.Now().UTC(),
	}
}

// Friendship is the symmetric accepted relation, stored once with
// UserID1 < UserID2.
type Friendship struct {
	ID        int64     `json:"id"`
	UserID1   int64     `json:"user_id_1"`
	UserID2   int64     `json:"user_id_2"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFriendship normalizes the pair so the smaller ID is always first.
func NewFriendship(a, b int64) *Friendship {
	if a > b {
		a, b = b, a
	}
	return &Friendship{
		UserID1:   a,
		UserID2:   b,
		CreatedAt: time.Now().UTC(),
	}
}

// FriendEntry is one row of the friends list: the friend plus the derived
// fields the list is ordered by.
type FriendEntry struct {
	User          *User      `json:"user"`
	UnreadCount   int64      `json:"unread_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}
