package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

// RequestID attaches a unique id to every request for log correlation.
// An incoming X-Request-ID header is trusted; otherwise a fresh uuid is
// generated. The id is echoed back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(string(domain.KeyRequestID), requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}
