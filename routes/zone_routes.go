package routes

import (
	"safetour/internal/handlers"
	"safetour/internal/middleware"
	"safetour/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupZoneRoutes sets up the read-only safe-zone routes
func SetupZoneRoutes(r *gin.RouterGroup, zoneHandler *handlers.ZoneHandler, authService services.AuthService) {
	zones := r.Group("/zones")
	zones.Use(middleware.AuthRequired(authService))
	{
		zones.GET("", zoneHandler.ListActive)
	}
}
