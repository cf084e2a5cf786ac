package middleware

import (
	"net/http"
	"strings"

	"medbook/services/session"
	"medbook/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and stashes the user ID in the
// request context for the handlers. Locally minted JWTs carry the user ID in
// their subject; tokens issued by a remote endpoint are opaque strings, so
// they are checked against the live session instead.
func AuthRequired(sessions session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			userID = sessionUserID(sessions, tokenString)
			if userID == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
				return
			}
		}

		c.Set("userID", userID)
		c.Set("token", tokenString)
		c.Next()
	}
}

// sessionUserID resolves an opaque bearer token against the current session.
// The token is honored only while the session is authenticated and the token
// matches the one the session holds.
func sessionUserID(sessions session.Manager, token string) string {
	if sessions == nil || token == "" {
		return ""
	}
	snap := sessions.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil || snap.Token != token {
		return ""
	}
	return snap.User.ID
}

// UserID returns the authenticated user ID set by AuthRequired.
func UserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
