package domain

import (
	"time"
)

type GroupRole string

const (
	GroupRoleAdmin  GroupRole = "admin"
	GroupRoleMember GroupRole = "member"
)

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	Members []*GroupMember `json:"members,omitempty"`
}

func NewGroup(name, description, avatar string, createdBy int64) *Group {
	return &Group{
		Name:        name,
		Description: description,
		Avatar:      avatar,
		CreatedBy:   createdBy,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

type GroupMember struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	Role     GroupRole `json:"role"`
	JoinedAt time.Time `json:"joined_at"`

	User *User `json:"user,omitempty"`
}

type GroupMessage struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	SenderID  int64     `json:"sender_id"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`

	Sender *User `json:"sender,omitempty"`
}

func NewGroupMessage(groupID, senderID int64, text string) *GroupMessage {
	return &GroupMessage{
		GroupID:   groupID,
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}
