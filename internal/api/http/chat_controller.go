package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
)

type ChatController struct {
	chats service.ChatInteractor
}

func NewChatController(chats service.ChatInteractor) *ChatController {
	return &ChatController{chats: chats}
}

func (c *ChatController) Send(ctx *gin.Context) {
	receiverID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	type SendBody struct {
		Message string `json:"message" binding:"required"`
	}
	var req SendBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := c.chats.Send(ctx.Request.Context(), currentUserID(ctx), receiverID, req.Message)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrNotFriends) {
			status = http.StatusForbidden
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": msg})
}

func (c *ChatController) History(ctx *gin.Context) {
	otherID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	messages, err := c.chats.History(ctx.Request.Context(), currentUserID(ctx), otherID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Open returns the conversation and marks incoming messages read, the way
// the chat screen behaves.
func (c *ChatController) Open(ctx *gin.Context) {
	otherID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	messages, err := c.chats.OpenConversation(ctx.Request.Context(), currentUserID(ctx), otherID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (c *ChatController) MarkRead(ctx *gin.Context) {
	messageID, err := strconv.ParseInt(ctx.Param("messageID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := c.chats.MarkMessageRead(ctx.Request.Context(), currentUserID(ctx), messageID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (c *ChatController) UnreadCount(ctx *gin.Context) {
	friendID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	count, err := c.chats.UnreadCount(ctx.Request.Context(), currentUserID(ctx), friendID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func (c *ChatController) UnreadTotal(ctx *gin.Context) {
	count, err := c.chats.UnreadTotal(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}
