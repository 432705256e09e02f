package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionIDKey = "sessionId"

// Session resolves the caller's session ID from the X-Session-Id header,
// minting a fresh one when absent, and echoes it on the response so clients
// can keep it for subsequent requests. Sessions carry no identity; the ID is
// only a handle onto in-memory state.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Session-Id"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(sessionIDKey, id)
		c.Writer.Header().Set("X-Session-Id", id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID stored by Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
