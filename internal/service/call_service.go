package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/lib/logger/sl"
)

var (
	ErrCallInProgress = errors.New("another call is already in progress")
	ErrNoActiveCall   = errors.New("no active call")
	ErrNotInCall      = errors.New("user is not part of the active call")
)

// CallEventType names a call session transition.
type CallEventType string

const (
	CallEventStarted  CallEventType = "started"
	CallEventAnswered CallEventType = "answered"
	CallEventEnded    CallEventType = "ended"
	CallEventDeclined CallEventType = "declined"
	CallEventMissed   CallEventType = "missed"
)

type CallEvent struct {
	Type    CallEventType       `json:"type"`
	Session *domain.CallSession `json:"session"`
}

// CallEventFunc is invoked synchronously on every session transition.
type CallEventFunc func(CallEvent)

// CallService owns the single in-memory call session. All state behind the
// mutex; at most one call at a time.
type CallService struct {
	calls         repository.CallRepository
	users         repository.UserRepository
	notifications NotificationInteractor
	ringTimeout   time.Duration
	log           *slog.Logger

	mu         sync.RWMutex
	session    *domain.CallSession
	ringTimer  *time.Timer
	ticker     *time.Ticker
	tickerDone chan struct{}

	listenerMu sync.Mutex
	listeners  map[int64]CallEventFunc
	nextID     int64
}

func NewCallService(
	calls repository.CallRepository,
	users repository.UserRepository,
	notifications NotificationInteractor,
	ringTimeout time.Duration,
	log *slog.Logger,
) *CallService {
	if log == nil {
		log = slog.Default()
	}
	if ringTimeout <= 0 {
		ringTimeout = 30 * time.Second
	}
	return &CallService{
		calls:         calls,
		users:         users,
		notifications: notifications,
		ringTimeout:   ringTimeout,
		log:           log,
		listeners:     make(map[int64]CallEventFunc),
	}
}

// Subscribe registers a listener for session transitions and returns a handle
// for Unsubscribe.
func (s *CallService) Subscribe(fn CallEventFunc) int64 {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	return id
}

func (s *CallService) Unsubscribe(id int64) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	delete(s.listeners, id)
}

func (s *CallService) notify(event CallEvent) {
	s.listenerMu.Lock()
	fns := make([]CallEventFunc, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Start persists an outgoing call row, installs the in-memory session and
// arms the ring timeout. If nobody answers in time the row becomes "missed"
// and the session is cleared.
func (s *CallService) Start(ctx context.Context, callerID, receiverID int64, callType domain.CallType) (*domain.CallSession, error) {
	const op = "service.call.start"

	switch callType {
	case domain.CallTypeVoice, domain.CallTypeVideo:
	default:
		return nil, errors.New("invalid call type")
	}
	if callerID == receiverID {
		return nil, errors.New("cannot call yourself")
	}
	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	call := domain.NewCall(callerID, receiverID, callType)

	s.mu.Lock()
	if s.session != nil {
		s.mu.Unlock()
		return nil, ErrCallInProgress
	}

	if err := s.calls.Create(ctx, call); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	session := &domain.CallSession{
		CallID:     call.ID,
		CallerID:   callerID,
		ReceiverID: receiverID,
		Type:       callType,
		StartedAt:  call.StartedAt,
	}
	s.session = session
	s.ringTimer = time.AfterFunc(s.ringTimeout, func() { s.onRingTimeout(call.ID) })
	s.mu.Unlock()

	s.log.Info("call started", slog.String("op", op), slog.String("call_id", call.ID))
	s.notify(CallEvent{Type: CallEventStarted, Session: snapshot(session)})
	return snapshot(session), nil
}

func (s *CallService) onRingTimeout(callID string) {
	const op = "service.call.ring_timeout"

	s.mu.Lock()
	if s.session == nil || s.session.CallID != callID || s.session.Answered {
		s.mu.Unlock()
		return
	}
	session := snapshot(s.session)
	s.clearSessionLocked()
	s.mu.Unlock()

	ctx := context.Background()
	if err := s.calls.UpdateStatus(ctx, callID, domain.CallStatusMissed, 0); err != nil {
		s.log.Error("failed to mark call missed", slog.String("op", op), sl.Err(err))
	}
	if caller, err := s.users.GetByID(ctx, session.CallerID); err == nil {
		if _, err := s.notifications.Notify(ctx, session.ReceiverID, "Missed call", "Missed "+string(session.Type)+" call from "+caller.Username); err != nil {
			s.log.Warn("missed-call notification failed", slog.String("op", op), sl.Err(err))
		}
	}

	s.log.Info("call missed", slog.String("op", op), slog.String("call_id", callID))
	s.notify(CallEvent{Type: CallEventMissed, Session: session})
}

// Answer cancels the ring timeout and starts the 1 Hz duration counter. The
// counter lives in memory only; the row is updated when the call ends.
func (s *CallService) Answer(ctx context.Context, userID int64) (*domain.CallSession, error) {
	const op = "service.call.answer"

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveCall
	}
	if s.session.ReceiverID != userID {
		s.mu.Unlock()
		return nil, ErrNotInCall
	}
	if s.session.Answered {
		s.mu.Unlock()
		return snapshot(s.session), nil
	}

	s.stopRingTimerLocked()
	s.session.Answered = true
	s.startTickerLocked()
	session := snapshot(s.session)
	s.mu.Unlock()

	s.log.Info("call answered", slog.String("op", op), slog.String("call_id", session.CallID))
	s.notify(CallEvent{Type: CallEventAnswered, Session: session})
	return session, nil
}

// Decline ends an unanswered call from the receiver's side.
func (s *CallService) Decline(ctx context.Context, userID int64) error {
	const op = "service.call.decline"

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return ErrNoActiveCall
	}
	if s.session.ReceiverID != userID {
		s.mu.Unlock()
		return ErrNotInCall
	}
	session := snapshot(s.session)
	s.clearSessionLocked()
	s.mu.Unlock()

	if err := s.calls.UpdateStatus(ctx, session.CallID, domain.CallStatusDeclined, 0); err != nil {
		return err
	}

	s.log.Info("call declined", slog.String("op", op), slog.String("call_id", session.CallID))
	s.notify(CallEvent{Type: CallEventDeclined, Session: session})
	return nil
}

// End terminates the call from either side and persists the final duration.
func (s *CallService) End(ctx context.Context, userID int64) (*domain.Call, error) {
	const op = "service.call.end"

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveCall
	}
	if s.session.CallerID != userID && s.session.ReceiverID != userID {
		s.mu.Unlock()
		return nil, ErrNotInCall
	}
	session := snapshot(s.session)
	s.clearSessionLocked()
	s.mu.Unlock()

	if err := s.calls.UpdateStatus(ctx, session.CallID, domain.CallStatusEnded, session.Elapsed); err != nil {
		return nil, err
	}
	call, err := s.calls.GetByID(ctx, session.CallID)
	if err != nil {
		return nil, err
	}

	s.log.Info("call ended", slog.String("op", op), slog.String("call_id", call.ID), slog.Int64("duration", call.Duration))
	s.notify(CallEvent{Type: CallEventEnded, Session: session})
	return call, nil
}

// ActiveSession returns a copy of the current session, or nil.
func (s *CallService) ActiveSession() *domain.CallSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	return snapshot(s.session)
}

func (s *CallService) History(ctx context.Context, userID int64) ([]*domain.Call, error) {
	return s.calls.ListForUser(ctx, userID)
}

// startTickerLocked begins the 1 Hz elapsed counter. Caller holds s.mu.
func (s *CallService) startTickerLocked() {
	s.ticker = time.NewTicker(time.Second)
	s.tickerDone = make(chan struct{})
	go func(t *time.Ticker, done chan struct{}) {
		for {
			select {
			case <-t.C:
				s.mu.Lock()
				if s.session != nil {
					s.session.Elapsed++
				}
				s.mu.Unlock()
			case <-done:
				return
			}
		}
	}(s.ticker, s.tickerDone)
}

// clearSessionLocked tears down the session and every timer armed for it.
// Caller holds s.mu. Each timer start is paired with exactly one stop here.
func (s *CallService) clearSessionLocked() {
	s.stopRingTimerLocked()
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.tickerDone)
		s.ticker = nil
		s.tickerDone = nil
	}
	s.session = nil
}

func (s *CallService) stopRingTimerLocked() {
	if s.ringTimer != nil {
		s.ringTimer.Stop()
		s.ringTimer = nil
	}
}

func snapshot(session *domain.CallSession) *domain.CallSession {
	copied := *session
	return &copied
}
