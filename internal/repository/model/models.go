package model

import (
	"time"
)

type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Email          string    `gorm:"size:255;uniqueIndex;not null"`
	Username       string    `gorm:"size:60;uniqueIndex;not null"`
	PasswordHash   string    `gorm:"size:255;not null"`
	ProfilePicture string    `gorm:"size:255"`
	IsOnline       bool      `gorm:"not null;default:false"`
	LastSeen       time.Time `gorm:"not null"`
	IsAdmin        bool      `gorm:"not null;default:false"`
	IsBlocked      bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }

type Message struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	SenderID   int64     `gorm:"index:idx_messages_sender_ts;not null"`
	ReceiverID int64     `gorm:"index:idx_messages_receiver_ts;not null"`
	Text       string    `gorm:"column:message;type:text;not null"`
	Timestamp  time.Time `gorm:"index:idx_messages_sender_ts;index:idx_messages_receiver_ts;not null"`
	IsRead     bool      `gorm:"not null;default:false"`
}

func (Message) TableName() string { return "messages" }

type FriendRequest struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	FromUserID int64     `gorm:"uniqueIndex:idx_friend_requests_pair;not null"`
	ToUserID   int64     `gorm:"uniqueIndex:idx_friend_requests_pair;index;not null"`
	Message    string    `gorm:"type:text"`
	Status     string    `gorm:"size:20;not null;default:'pending'"`
	CreatedAt  time.Time `gorm:"not null"`

	From *User `gorm:"foreignKey:FromUserID"`
}

func (FriendRequest) TableName() string { return "friend_requests" }

// Friendship rows are stored once per pair with UserID1 < UserID2.
type Friendship struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID1   int64     `gorm:"uniqueIndex:idx_friendships_pair;not null"`
	UserID2   int64     `gorm:"uniqueIndex:idx_friendships_pair;index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Friendship) TableName() string { return "friendships" }

type Group struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Avatar      string    `gorm:"size:255"`
	CreatedBy   int64     `gorm:"index;not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`

	Members []GroupMember `gorm:"foreignKey:GroupID"`
}

func (Group) TableName() string { return "groups" }

type GroupMember struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	GroupID  int64     `gorm:"uniqueIndex:idx_group_members_pair;not null"`
	UserID   int64     `gorm:"uniqueIndex:idx_group_members_pair;index;not null"`
	Role     string    `gorm:"size:20;not null;default:'member'"`
	JoinedAt time.Time `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID"`
}

func (GroupMember) TableName() string { return "group_members" }

type GroupMessage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	GroupID   int64     `gorm:"index:idx_group_messages_group_ts;not null"`
	SenderID  int64     `gorm:"index;not null"`
	Text      string    `gorm:"column:message;type:text;not null"`
	Timestamp time.Time `gorm:"index:idx_group_messages_group_ts;not null"`

	Sender *User `gorm:"foreignKey:SenderID"`
}

func (GroupMessage) TableName() string { return "group_messages" }

type Call struct {
	ID         string     `gorm:"size:64;primaryKey"`
	CallerID   int64      `gorm:"index;not null"`
	ReceiverID int64      `gorm:"index;not null"`
	Type       string     `gorm:"size:20;not null"`
	Status     string     `gorm:"size:20;not null"`
	Duration   int64      `gorm:"not null;default:0"`
	StartedAt  time.Time  `gorm:"index;not null"`
	EndedAt    *time.Time
}

func (Call) TableName() string { return "calls" }

type Status struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"index;not null"`
	Type      string    `gorm:"size:20;not null"`
	Content   string    `gorm:"type:text;not null"`
	Caption   string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	IsActive  bool      `gorm:"not null;default:true"`

	Owner *User `gorm:"foreignKey:UserID"`
}

func (Status) TableName() string { return "statuses" }

type StatusView struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	StatusID int64     `gorm:"uniqueIndex:idx_status_views_pair;not null"`
	ViewerID int64     `gorm:"uniqueIndex:idx_status_views_pair;index;not null"`
	ViewedAt time.Time `gorm:"not null"`

	Viewer *User `gorm:"foreignKey:ViewerID"`
}

func (StatusView) TableName() string { return "status_views" }

type Notification struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Title        string    `gorm:"size:255;not null"`
	Message      string    `gorm:"type:text;not null"`
	Type         string    `gorm:"size:20;not null"`
	TargetUserID *int64    `gorm:"index"`
	IsRead       bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"index;not null"`
}

func (Notification) TableName() string { return "notifications" }

type Migration struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:120;uniqueIndex;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (Migration) TableName() string { return "schema_migrations" }
