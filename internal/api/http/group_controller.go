package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
)

type GroupController struct {
	groups service.GroupInteractor
}

func NewGroupController(groups service.GroupInteractor) *GroupController {
	return &GroupController{groups: groups}
}

func groupStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotGroupAdmin):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (c *GroupController) Create(ctx *gin.Context) {
	type CreateBody struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Avatar      string `json:"avatar"`
	}
	var req CreateBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	group, err := c.groups.Create(ctx.Request.Context(), currentUserID(ctx), req.Name, req.Description, req.Avatar)
	if err != nil {
		ctx.JSON(groupStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"group": group})
}

func (c *GroupController) List(ctx *gin.Context) {
	groups, err := c.groups.ListForUser(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (c *GroupController) Get(ctx *gin.Context) {
	groupID, err := strconv.ParseInt(ctx.Param("groupID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	group, err := c.groups.Get(ctx.Request.Context(), currentUserID(ctx), groupID)
	if err != nil {
		ctx.JSON(groupStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"group": group})
}

func (c *GroupController) AddMember(ctx *gin.Context) {
	groupID, err := strconv.ParseInt(ctx.Param("groupID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	type AddBody struct {
		UserID int64 `json:"user_id" binding:"required"`
	}
	var req AddBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := c.groups.AddMember(ctx.Request.Context(), currentUserID(ctx), groupID, req.UserID); err != nil {
		ctx.JSON(groupStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "added"})
}

func (c *GroupController) RemoveMember(ctx *gin.Context) {
	groupID, err := strconv.ParseInt(ctx.Param("groupID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	userID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := c.groups.RemoveMember(ctx.Request.Context(), currentUserID(ctx), groupID, userID); err != nil {
		ctx.JSON(groupStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (c *GroupController) SendMessage(ctx *gin.Context) {
	groupID, err := strconv.ParseInt(ctx.Param("groupID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
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

	msg, err := c.groups.SendMessage(ctx.Request.Context(), currentUserID(ctx), groupID, req.Message)
	if err != nil {
		ctx.JSON(groupStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": msg})
}

func (c *GroupController) Messages(ctx *gin.Context) {
	groupID, err := strconv.ParseInt(ctx.Param("groupID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	messages, err := c.groups.Messages(ctx.Request.Context(), currentUserID(ctx), groupID)
	if err != nil {
		ctx.JSON(groupStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (c *GroupController) Deactivate(ctx *gin.Context) {
	groupID, err := strconv.ParseInt(ctx.Param("groupID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	if err := c.groups.Deactivate(ctx.Request.Context(), currentUserID(ctx), groupID); err != nil {
		ctx.JSON(groupStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
