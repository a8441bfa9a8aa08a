package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request ID between services.
const HeaderRequestID = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID assigns each request an identifier, honoring one supplied by
// the upstream gateway, and stores it in the request context so outbound
// calls and events can carry it as a correlation ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), requestIDKey, id),
		)

		c.Next()
	}
}

// RequestIDFromContext returns the request ID stored by RequestID, or ""
// when the context carries none.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
