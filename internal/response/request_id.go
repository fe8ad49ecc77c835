package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key under which the request ID
// is stored for the envelope metadata.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware assigns every request an ID and echoes it back in
// the X-Request-ID header. A client-supplied ID is kept so callers can
// correlate retries.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
