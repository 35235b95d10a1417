package middleware

import (
	"fmt"

	"github.com/Ayash-Bera/copilot-chatbot/pkg/utils"
	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the hardening headers. Pages carry their own
// inline styles and embed the chart served from imageOrigin.
func SecurityHeaders(imageOrigin string) gin.HandlerFunc {
	csp := fmt.Sprintf("default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' %s", imageOrigin)
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", csp)
		c.Next()
	}
}

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRandomID(8)
		}

		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}
