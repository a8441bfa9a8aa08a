package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderUserID is populated by the authenticating gateway in front of this
// service. Requests reaching the authenticated group without it were not
// authenticated upstream.
const HeaderUserID = "X-User-ID"

// ContextUserIDKey is the gin context key handlers read the caller's
// identity from.
const ContextUserIDKey = "user_id"

// RequireUser rejects requests that carry no upstream identity and exposes
// the user ID to handlers.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
