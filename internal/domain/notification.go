package domain

import (
	"time"
)

type NotificationType string

const (
	NotificationGlobal     NotificationType = "global"
	NotificationIndividual NotificationType = "individual"
)

type Notification struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	Type         NotificationType `json:"type"`
	TargetUserID *int64           `json:"target_user_id,omitempty"`
	IsRead       bool             `json:"is_read"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NewGlobalNotification targets every user.
func NewGlobalNotification(title, message string) *Notification {
	return &Notification{
		Title:     title,
		Message:   message,
		Type:      NotificationGlobal,
		CreatedAt: time.Now().UTC(),
	}
}

func NewUserNotification(targetUserID int64, title, message string) *Notification {
	return &Notification{
		Title:        title,
		Message:      message,
		Type:         NotificationIndividual,
		TargetUserID: &targetUserID,
		CreatedAt:    time.Now().UTC(),
	}
}
