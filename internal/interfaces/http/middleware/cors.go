package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS handles cross-origin requests for the API surface. Credentials are
// allowed, so the origin must match the whitelist exactly.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Header("Access-Control-Allow-Origin", allowedOrigin(origin, allowedOrigins))
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func allowedOrigin(origin string, allowedOrigins []string) string {
	for _, allowed := range allowedOrigins {
		if origin == allowed {
			return origin
		}
	}
	return ""
}

// SecurityHeaders sets the standard browser hardening headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}
