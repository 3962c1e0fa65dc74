package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
)

type AuthController struct {
	users service.UserInteractor
}

func NewAuthController(users service.UserInteractor) *AuthController {
	return &AuthController{users: users}
}

func (c *AuthController) Register(ctx *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, err := c.users.Register(ctx.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, repository.ErrUserExists) {
			status = http.StatusConflict
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func (c *AuthController) Login(ctx *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := c.users.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, service.ErrUserBlocked) {
			status = http.StatusForbidden
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.users.Logout(ctx.Request.Context(), currentUserID(ctx)); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
