package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CallType string

const (
	CallTypeVoice CallType = "voice"
	CallTypeVideo CallType = "video"
)

type CallStatus string

const (
	CallStatusIncoming CallStatus = "incoming"
	CallStatusOutgoing CallStatus = "outgoing"
	CallStatusMissed   CallStatus = "missed"
	CallStatusEnded    CallStatus = "ended"
	CallStatusDeclined CallStatus = "declined"
)

// Call is one persisted call-history row.
type Call struct {
	ID         string     `json:"id"`
	CallerID   int64      `json:"caller_id"`
	ReceiverID int64      `json:"receiver_id"`
	Type       CallType   `json:"type"`
	Status     CallStatus `json:"status"`
	Duration   int64      `json:"duration"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

func NewCall(callerID, receiverID int64, callType CallType) *Call {
	return &Call{
		ID:         uuid.New().String(),
		CallerID:   callerID,
		ReceiverID: receiverID,
		Type:       callType,
		Status:     CallStatusOutgoing,
		StartedAt:  time.Now().UTC(),
	}
}

// FormatDuration renders the duration the way the call-history screen shows
// it: mm:ss, or hh:mm:ss past an hour.
func (c *Call) FormatDuration() string {
	h := c.Duration / 3600
	m := (c.Duration % 3600) / 60
	s := c.Duration % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// CallSession is the single in-memory record of an ongoing call.
type CallSession struct {
	CallID     string    `json:"call_id"`
	CallerID   int64     `json:"caller_id"`
	ReceiverID int64     `json:"receiver_id"`
	Type       CallType  `json:"type"`
	StartedAt  time.Time `json:"started_at"`
	Answered   bool      `json:"answered"`
	Elapsed    int64     `json:"elapsed"`
}
