package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursekit/internal/interfaces/http/handlers"
	adminHandlers "coursekit/internal/interfaces/http/handlers/admin"
	"coursekit/internal/interfaces/http/middleware"
	"coursekit/internal/interfaces/http/routes"
	sharedConfig "coursekit/internal/shared/config"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/session"
)

// RouterConfig bundles everything the HTTP surface needs.
type RouterConfig struct {
	ServerConfig sharedConfig.ServerConfig
	Sessions     *session.Store
	Logger       logger.Interface

	AuthHandler      *handlers.AuthHandler
	CourseHandler    *handlers.CourseHandler
	LessonHandler    *handlers.LessonHandler
	DashboardHandler *handlers.DashboardHandler

	AdminUserHandler       *adminHandlers.UserHandler
	AdminCourseHandler     *adminHandlers.CourseHandler
	AdminEnrollmentHandler *adminHandlers.EnrollmentHandler
}

// NewRouter assembles the gin engine: recovery, request logging, security
// headers, CORS, then the access gate, then the route groups.
func NewRouter(cfg *RouterConfig) *gin.Engine {
	gin.SetMode(cfg.ServerConfig.Mode)

	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestLogger(cfg.Logger))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.ServerConfig.AllowedOrigins))

	accessMw := middleware.NewAccessMiddleware(cfg.Sessions, middleware.DefaultRouteTable(), cfg.Logger)
	engine.Use(accessMw.Handle())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler: cfg.AuthHandler,
	})
	routes.SetupCourseRoutes(engine, &routes.CourseRouteConfig{
		CourseHandler:    cfg.CourseHandler,
		LessonHandler:    cfg.LessonHandler,
		DashboardHandler: cfg.DashboardHandler,
	})
	routes.SetupAdminRoutes(engine, &routes.AdminRouteConfig{
		UserHandler:       cfg.AdminUserHandler,
		CourseHandler:     cfg.AdminCourseHandler,
		EnrollmentHandler: cfg.AdminEnrollmentHandler,
	})

	return engine
}
