package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"coursekit/internal/shared/logger"
)

// RequestLogger logs one line per completed request, levelled by status.
func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Errorw("request completed", args...)
		case c.Writer.Status() >= 400:
			log.Warnw("request completed", args...)
		default:
			log.Debugw("request completed", args...)
		}
	}
}
