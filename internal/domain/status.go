package domain

import (
	"time"
)

type StatusType string

const (
	StatusTypeText  StatusType = "text"
	StatusTypeImage StatusType = "image"
	StatusTypeVideo StatusType = "video"
)

// DefaultStatusTTL is how long a status stays visible after posting.
const DefaultStatusTTL = 12 * time.Hour

// Status is an ephemeral post that disappears after its TTL.
type Status struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Type      StatusType `json:"type"`
	Content   string     `json:"content"`
	Caption   string     `json:"caption,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	ExpiresAt time.Time  `json:"expires_at"`
	IsActive  bool       `json:"is_active"`

	Owner *User `json:"owner,omitempty"`
}

func NewStatus(userID int64, statusType StatusType, content, caption string, ttl time.Duration) *Status {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	now := time.Now().UTC()
	return &Status{
		UserID:    userID,
		Type:      statusType,
		Content:   content,
		Caption:   caption,
		Timestamp: now,
		ExpiresAt: now.Add(ttl),
		IsActive:  true,
	}
}

// Expired is computed from the clock, never from the IsActive flag.
func (s *Status) Expired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// StatusView records that a viewer saw a status. At most one row exists per
// (status, viewer) pair.
type StatusView struct {
	ID       int64     `json:"id"`
	StatusID int64     `json:"status_id"`
	ViewerID int64     `json:"viewer_id"`
	ViewedAt time.Time `json:"viewed_at"`

	Viewer *User `json:"viewer,omitempty"`
}

// UserStatuses groups one user's active statuses for the status feed.
type UserStatuses struct {
	User     *User     `json:"user"`
	Statuses []*Status `json:"statuses"`
}
