package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
)

type AdminController struct {
	admin         service.AdminInteractor
	statuses      service.StatusInteractor
	notifications service.NotificationInteractor
}

func NewAdminController(admin service.AdminInteractor, statuses service.StatusInteractor, notifications service.NotificationInteractor) *AdminController {
	return &AdminController{admin: admin, statuses: statuses, notifications: notifications}
}

func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.admin.ListUsers(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

func (c *AdminController) Block(ctx *gin.Context) {
	c.setBlocked(ctx, true)
}

func (c *AdminController) Unblock(ctx *gin.Context) {
	c.setBlocked(ctx, false)
}

func (c *AdminController) setBlocked(ctx *gin.Context, blocked bool) {
	userID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := c.admin.SetBlocked(ctx.Request.Context(), userID, blocked); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

func (c *AdminController) Promote(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := c.admin.Promote(ctx.Request.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "promoted"})
}

func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := c.admin.DeleteUser(ctx.Request.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (c *AdminController) Broadcast(ctx *gin.Context) {
	type BroadcastBody struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	var req BroadcastBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	notification, err := c.notifications.Broadcast(ctx.Request.Context(), req.Title, req.Message)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"notification": notification})
}

func (c *AdminController) CleanupStatuses(ctx *gin.Context) {
	expired, err := c.statuses.CleanupExpired(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"expired": expired})
}

func (c *AdminController) Totals(ctx *gin.Context) {
	totals, err := c.admin.Totals(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"totals": totals})
}
