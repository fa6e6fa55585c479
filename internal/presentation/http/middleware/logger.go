package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dinetrack/dinetrack-api/pkg/logger"
)

// LoggerMiddleware creates a structured request logging middleware. Every
// request carries a request ID, generated when the client does not send one.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := map[string]interface{}{
			"request_id": requestID[:8],
			"method":     c.Request.Method,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"path":       path,
		}

		if c.Writer.Status() >= 500 {
			logger.Error("request failed", fields)
		} else {
			logger.Info("request", fields)
		}

		for _, e := range c.Errors {
			logger.Error("handler error", map[string]interface{}{
				"request_id": requestID[:8],
				"error":      e.Err.Error(),
			})
		}
	}
}
