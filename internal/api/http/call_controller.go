package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
	"github.com/talkline/talkline/lib/logger/sl"
)

type CallController struct {
	calls    service.CallInteractor
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewCallController(calls service.CallInteractor, log *slog.Logger) *CallController {
	return &CallController{
		calls: calls,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func callStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrCallInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoActiveCall):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotInCall):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func (c *CallController) Start(ctx *gin.Context) {
	type StartBody struct {
		ReceiverID int64  `json:"receiver_id" binding:"required"`
		Type       string `json:"type" binding:"required"`
	}
	var req StartBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := c.calls.Start(ctx.Request.Context(), currentUserID(ctx), req.ReceiverID, domain.CallType(req.Type))
	if err != nil {
		ctx.JSON(callStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"session": session})
}

func (c *CallController) Answer(ctx *gin.Context) {
	session, err := c.calls.Answer(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(callStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"session": session})
}

func (c *CallController) Decline(ctx *gin.Context) {
	if err := c.calls.Decline(ctx.Request.Context(), currentUserID(ctx)); err != nil {
		ctx.JSON(callStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "declined"})
}

func (c *CallController) End(ctx *gin.Context) {
	call, err := c.calls.End(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(callStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"call": call})
}

func (c *CallController) Active(ctx *gin.Context) {
	session := c.calls.ActiveSession()
	if session == nil {
		ctx.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"session": session})
}

func (c *CallController) History(ctx *gin.Context) {
	calls, err := c.calls.History(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"calls": calls})
}

// Events pushes call lifecycle events over a websocket. The client holds the
// connection open while the app is foregrounded; events for calls the user is
// not a party to are filtered out.
func (c *CallController) Events(ctx *gin.Context) {
	const op = "http.call.events"

	userID := currentUserID(ctx)

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("websocket upgrade failed", slog.String("op", op), sl.Err(err))
		return
	}
	defer conn.Close()

	events := make(chan service.CallEvent, 16)
	subID := c.calls.Subscribe(func(ev service.CallEvent) {
		if ev.Session.CallerID != userID && ev.Session.ReceiverID != userID {
			return
		}
		select {
		case events <- ev:
		default:
			// slow consumer, drop the event
		}
	})
	defer c.calls.Unsubscribe(subID)

	// reader goroutine: we never expect client frames, but reading is the
	// only way to notice the peer going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				c.log.Debug("websocket write failed", slog.String("op", op), sl.Err(err))
				return
			}
		}
	}
}
