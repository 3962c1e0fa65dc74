package domain

import (
	"time"
)

// User is an account in the local messenger database.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	IsOnline       bool      `json:"is_online"`
	LastSeen       time.Time `json:"last_seen"`
	IsAdmin        bool      `json:"is_admin"`
	IsBlocked      bool      `json:"is_blocked"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewUser(email, username, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		LastSeen:     now,
		CreatedAt:    now,
	}
}
