package handlers

import (
	"errors"
	"net/http"

	"medbook/services/api"
	"medbook/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the session manager to the UI layer.
type AuthHandler struct {
	Session session.Manager
}

// NewAuthHandler builds the handler around an explicitly injected session
// manager instance.
func NewAuthHandler(mgr session.Manager) *AuthHandler {
	return &AuthHandler{Session: mgr}
}

// LoginHandler handles POST /api/auth/login. Field-level validation failures
// come back as per-field messages, never as a session error.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.Session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var fieldErrs api.ValidationErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}

		snap := h.Session.Snapshot()
		if errors.Is(err, api.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": snap.Error})
			return
		}
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": snap.Error})
		return
	}

	snap := h.Session.Snapshot()
	c.JSON(http.StatusOK, gin.H{"token": snap.Token, "user": snap.User})
}

// LogoutHandler handles POST /api/auth/logout. Logout always succeeds from
// the caller's perspective.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	_ = h.Session.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// SessionHandler handles GET /api/auth/session and returns the current
// session snapshot for the UI to render.
func (h *AuthHandler) SessionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Session.Snapshot())
}
