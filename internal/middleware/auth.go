package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/identity"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// AuthMiddleware validates the Authorization header with the configured
// verifier and stores the caller's identity on the request context.
func AuthMiddleware(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		id, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextUsername, id.Username)
		c.Next()
	}
}

// IdentityFromContext reassembles the identity stored by AuthMiddleware.
func IdentityFromContext(c *gin.Context) (identity.Identity, bool) {
	userID := c.GetString(ContextUserID)
	if userID == "" {
		return identity.Identity{}, false
	}
	return identity.Identity{UserID: userID, Username: c.GetString(ContextUsername)}, true
}
