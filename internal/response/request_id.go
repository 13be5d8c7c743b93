package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key for the request ID.
const ContextKeyRequestID = "request_id"

const headerRequestID = "X-Request-ID"

// maxRequestIDLen bounds client-supplied ids echoed back into logs.
const maxRequestIDLen = 128

// RequestIDMiddleware tags every request with an id, reusing the caller's
// X-Request-ID when it is present and reasonably sized.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(headerRequestID)
		if reqID == "" || len(reqID) > maxRequestIDLen {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header(headerRequestID, reqID)
		c.Next()
	}
}

// RequestID returns the id assigned by RequestIDMiddleware, or "".
func RequestID(c *gin.Context) string {
	id, _ := c.Get(ContextKeyRequestID)
	s, _ := id.(string)
	return s
}
