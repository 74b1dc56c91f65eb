package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/mfg-tool-dashboard/internal/constants"
	"github.com/yukikurage/mfg-tool-dashboard/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id and a request-scoped logger
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.With(c.Request.Context(), "request_id", requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}
