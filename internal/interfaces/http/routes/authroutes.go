package routes

import (
	"github.com/gin-gonic/gin"

	"coursekit/internal/interfaces/http/handlers"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
}

// SetupAuthRoutes configures authentication routes. They sit under a public
// prefix; session checks happen inside the handlers where needed.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/magic-link", cfg.AuthHandler.RequestMagicLink)
		auth.GET("/verify", cfg.AuthHandler.VerifyMagicLink)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthHandler.Me)
	}
}
