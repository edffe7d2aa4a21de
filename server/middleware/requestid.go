package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bkocaman/harbor/logger"
)

// HeaderRequestID is the request/response header carrying the correlation id.
const HeaderRequestID = "X-Request-Id"

// RequestID tags every request with a correlation id. A caller-supplied
// header is trusted as-is so ids survive proxy hops; otherwise a fresh UUID
// is minted. The id is echoed in the response and stored on the context
// under logger.FieldRequestID for the request logger to pick up.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logger.FieldRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
