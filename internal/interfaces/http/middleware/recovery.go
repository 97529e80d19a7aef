package middleware

import (
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/utils"
)

func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isBrokenConnection(recovered) {
			logger.Error("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		c.Abort()
	})
}

func isBrokenConnection(err interface{}) bool {
	ne, ok := err.(*net.OpError)
	if !ok {
		return false
	}
	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer")
}
