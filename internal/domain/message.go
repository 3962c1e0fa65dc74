package domain

import (
	"time"
)

// Message is a direct message between two users. Messages in a conversation
// are totally ordered by Timestamp ascending.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Text       string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"is_read"`
}

func NewMessage(senderID, receiverID int64, text string) *Message {
	return &Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  time.Now().UTC(),
	}
}
