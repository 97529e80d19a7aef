package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "coursekit/internal/interfaces/http/handlers/admin"
	"coursekit/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for back-office routes.
type AdminRouteConfig struct {
	UserHandler       *adminHandlers.UserHandler
	CourseHandler     *adminHandlers.CourseHandler
	EnrollmentHandler *adminHandlers.EnrollmentHandler
}

// SetupAdminRoutes configures the back-office. The access middleware already
// classifies /admin; the group-level RequireAdmin is the second gate, and the
// handlers re-check the session themselves.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(authorization.RequireAdmin())
	{
		admin.POST("/users", cfg.UserHandler.CreateUser)
		admin.GET("/users", cfg.UserHandler.ListUsers)
		admin.PATCH("/users/:id", cfg.UserHandler.UpdateUser)

		admin.POST("/courses", cfg.CourseHandler.CreateCourse)
		admin.PATCH("/courses/:slug", cfg.CourseHandler.UpdateCourse)

		admin.POST("/enrollments", cfg.EnrollmentHandler.GrantEnrollment)
		admin.DELETE("/enrollments/:userID/:courseID", cfg.EnrollmentHandler.RevokeEnrollment)
	}
}
