package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/dto"
	apierrors "github.com/yukikurage/workout-api/internal/errors"
	"github.com/yukikurage/workout-api/internal/logger"
	"github.com/yukikurage/workout-api/internal/middleware"
	"github.com/yukikurage/workout-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register creates a new user.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required,min=3,max=100"`
		FullName string `json:"full_name" binding:"max=255"`
		Password string `json:"password" binding:"required"`
		Weight   *int   `json:"weight" binding:"omitempty,min=0"`
		Height   *int   `json:"height" binding:"omitempty,min=0"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestFromBinding(c, err)
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Weight:   req.Weight,
		Height:   req.Height,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Token authenticates a user, starts a session and returns a bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	type TokenRequest struct {
		Username string `json:"username" form:"username" binding:"required"`
		Password string `json:"password" form:"password" binding:"required"`
	}

	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequestFromBinding(c, err)
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	principal := auth.Principal{ID: result.User.ID, Username: result.User.Username}
	if err := middleware.SaveSession(c, principal); err != nil {
		h.log.Error(c.Request.Context(), "failed to save session", err)
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.TokenDTO{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        dto.ToUserDTO(*result.User),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		h.log.Error(c.Request.Context(), "failed to clear session", err)
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(p.ID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
