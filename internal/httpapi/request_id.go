package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key the request id is stored under.
const RequestIDKey = "request_id"

// RequestID ensures every request carries a correlation id: it honors an
// incoming X-Request-ID header when present and well-formed, otherwise
// mints a new one. The id is echoed back in the response header and
// stashed in the context for ZapLogger to attach to its log line.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")

		l := len(requestID)
		if l < 1 || l > 64 {
			requestID = uuid.New().String()
		}

		c.Header("X-Request-ID", requestID)
		c.Set(RequestIDKey, requestID)

		c.Next()
	}
}

// GetRequestID retrieves the request id stashed by RequestID, or "" if
// the middleware never ran.
func GetRequestID(c *gin.Context) string {
	if v, exists := c.Get(RequestIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
