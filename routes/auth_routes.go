package routes

import (
	"safetour/internal/handlers"
	"safetour/internal/middleware"
	"safetour/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up routes for registration, login and token refresh
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, authService services.AuthService) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthRequired(authService))
	{
		protected.GET("/me", authHandler.Me)
	}
}
