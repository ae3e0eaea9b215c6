package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/griffincancode/refreshrated/internal/shared/id"
)

// RequestIDHeader is the response header carrying the minted request id.
const RequestIDHeader = "X-Request-Id"

// RequestIDKey is the gin context key holding the request's id.RequestID.
const RequestIDKey = "requestId"

// RequestID mints a ULID-based id.RequestID per inbound request, attaches
// it to the gin context and the response header, so handler logs and
// arbitration decision logs can be correlated back to the request that
// triggered them.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := id.NewRequestID()
		c.Set(RequestIDKey, rid)
		c.Header(RequestIDHeader, rid.String())
		c.Next()
	}
}
