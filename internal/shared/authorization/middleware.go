package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards admin route groups behind the role the access
// middleware resolved. Non-admins get the same silent redirect the outer
// gate produces, never a 403 that would confirm the route exists.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString("user_role"))
		if !role.IsAdmin() {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
