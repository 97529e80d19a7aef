package routes

import (
	"github.com/gin-gonic/gin"

	"coursekit/internal/interfaces/http/handlers"
)

// CourseRouteConfig holds dependencies for catalog and learning routes.
type CourseRouteConfig struct {
	CourseHandler    *handlers.CourseHandler
	LessonHandler    *handlers.LessonHandler
	DashboardHandler *handlers.DashboardHandler
}

// SetupCourseRoutes configures the catalog (public), the learning surface
// and the dashboard (both behind the access middleware's protected
// prefixes).
func SetupCourseRoutes(engine *gin.Engine, cfg *CourseRouteConfig) {
	api := engine.Group("/api")
	{
		api.GET("/courses", cfg.CourseHandler.ListCourses)
		api.GET("/courses/:slug", cfg.CourseHandler.GetCourse)

		me := api.Group("/me")
		{
			me.POST("/courses/:courseID/complete", cfg.LessonHandler.CompleteCourse)
		}
	}

	learn := engine.Group("/learn")
	{
		learn.GET("/:slug/lessons/:lessonSlug", cfg.LessonHandler.GetLesson)
	}

	dashboard := engine.Group("/dashboard")
	{
		dashboard.GET("/courses", cfg.DashboardHandler.GetDashboard)
	}
}
