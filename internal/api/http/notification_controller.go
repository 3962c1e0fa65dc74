package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
)

type NotificationController struct {
	notifications service.NotificationInteractor
}

func NewNotificationController(notifications service.NotificationInteractor) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (c *NotificationController) List(ctx *gin.Context) {
	notifications, err := c.notifications.ListForUser(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	count, err := c.notifications.UnreadCount(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("notificationID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := c.notifications.MarkRead(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "read"})
}
