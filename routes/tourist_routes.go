package routes

import (
	"safetour/internal/handlers"
	"safetour/internal/middleware"
	"safetour/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupTouristRoutes sets up routes for tourist profiles and location updates
func SetupTouristRoutes(r *gin.RouterGroup, touristHandler *handlers.TouristHandler, authService services.AuthService) {
	tourists := r.Group("/tourists")
	tourists.Use(middleware.AuthRequired(authService))
	{
		// Self-service profile operations
		tourists.POST("", touristHandler.CreateProfile)
		tourists.GET("/me", touristHandler.GetOwnProfile)
		tourists.PUT("/me", touristHandler.UpdateProfile)
		tourists.PUT("/me/location", touristHandler.UpdateLocation)
	}

	// Authority views over the tourist registry
	registry := r.Group("/tourists")
	registry.Use(middleware.AuthRequired(authService), middleware.OperationRequired(services.OpViewTourists))
	{
		registry.GET("", touristHandler.List)
		registry.GET("/:id", touristHandler.GetByID)
	}
}
