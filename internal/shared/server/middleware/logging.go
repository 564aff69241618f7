package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"insight-chat/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		messageID, _ := c.Get("messageId")
		queryLen, _ := c.Get("queryLen")
		hasAttachment, _ := c.Get("hasAttachment")

		telemetry.Info("request.complete", map[string]any{
			"request_id":     RequestIDFromContext(c),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status":         c.Writer.Status(),
			"duration_ms":    float64(latency.Microseconds()) / 1000.0,
			"message_id":     messageID,
			"query_len":      queryLen,
			"has_attachment": hasAttachment,
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
		})
	}
}
