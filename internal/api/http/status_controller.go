package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
)

type StatusController struct {
	statuses service.StatusInteractor
}

func NewStatusController(statuses service.StatusInteractor) *StatusController {
	return &StatusController{statuses: statuses}
}

func (c *StatusController) Create(ctx *gin.Context) {
	type CreateBody struct {
		Type    string `json:"type" binding:"required"`
		Content string `json:"content" binding:"required"`
		Caption string `json:"caption"`
	}
	var req CreateBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status, err := c.statuses.Create(ctx.Request.Context(), currentUserID(ctx), domain.StatusType(req.Type), req.Content, req.Caption)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": status})
}

func (c *StatusController) Feed(ctx *gin.Context) {
	feed, err := c.statuses.Feed(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"feed": feed})
}

func (c *StatusController) Own(ctx *gin.Context) {
	statuses, err := c.statuses.Own(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

func (c *StatusController) View(ctx *gin.Context) {
	statusID, err := strconv.ParseInt(ctx.Param("statusID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status id"})
		return
	}

	if err := c.statuses.View(ctx.Request.Context(), currentUserID(ctx), statusID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "viewed"})
}

func (c *StatusController) Viewers(ctx *gin.Context) {
	statusID, err := strconv.ParseInt(ctx.Param("statusID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status id"})
		return
	}

	viewers, err := c.statuses.Viewers(ctx.Request.Context(), currentUserID(ctx), statusID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotStatusOwner):
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	count, err := c.statuses.ViewCount(ctx.Request.Context(), statusID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"viewers": viewers, "count": count})
}
