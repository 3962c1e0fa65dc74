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

type FriendController struct {
	friends service.FriendInteractor
}

func NewFriendController(friends service.FriendInteractor) *FriendController {
	return &FriendController{friends: friends}
}

func (c *FriendController) SendRequest(ctx *gin.Context) {
	type SendRequestBody struct {
		ToUserID int64  `json:"to_user_id" binding:"required"`
		Message  string `json:"message"`
	}
	var req SendRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	request, err := c.friends.SendRequest(ctx.Request.Context(), currentUserID(ctx), req.ToUserID, req.Message)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, service.ErrRequestExists), errors.Is(err, service.ErrAlreadyFriends):
			status = http.StatusConflict
		case errors.Is(err, repository.ErrNotFound):
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"request": request})
}

func (c *FriendController) Respond(ctx *gin.Context) {
	requestID, err := strconv.ParseInt(ctx.Param("requestID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	type RespondBody struct {
		Response string `json:"response" binding:"required"`
	}
	var req RespondBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err = c.friends.Respond(ctx.Request.Context(), currentUserID(ctx), requestID, domain.FriendRequestStatus(req.Response))
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, repository.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrNotRecipient):
			status = http.StatusForbidden
		case errors.Is(err, service.ErrRequestClosed):
			status = http.StatusConflict
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "responded"})
}

func (c *FriendController) List(ctx *gin.Context) {
	entries, err := c.friends.ListFriends(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"friends": entries})
}

func (c *FriendController) PendingRequests(ctx *gin.Context) {
	requests, err := c.friends.PendingRequests(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (c *FriendController) PendingCount(ctx *gin.Context) {
	count, err := c.friends.PendingCount(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func (c *FriendController) Relationship(ctx *gin.Context) {
	otherID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	relationship, err := c.friends.Relationship(ctx.Request.Context(), currentUserID(ctx), otherID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"relationship": relationship})
}

func (c *FriendController) Unfriend(ctx *gin.Context) {
	friendID, err := strconv.ParseInt(ctx.Param("userID"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := c.friends.Unfriend(ctx.Request.Context(), currentUserID(ctx), friendID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "unfriended"})
}
