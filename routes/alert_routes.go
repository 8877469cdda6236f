package routes

import (
	"safetour/internal/handlers"
	"safetour/internal/middleware"
	"safetour/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupAlertRoutes sets up routes for the emergency alert lifecycle
func SetupAlertRoutes(r *gin.RouterGroup, alertHandler *handlers.AlertHandler, authService services.AuthService) {
	alerts := r.Group("/alerts")
	alerts.Use(middleware.AuthRequired(authService))
	{
		alerts.POST("/sos", middleware.OperationRequired(services.OpRaiseSOS), alertHandler.RaiseSOS)
		alerts.GET("/active", middleware.OperationRequired(services.OpViewActiveAlerts), alertHandler.ListActive)
		alerts.PUT("/:id/acknowledge", middleware.OperationRequired(services.OpAcknowledgeAlert), alertHandler.Acknowledge)
		alerts.PUT("/:id/close", middleware.OperationRequired(services.OpCloseAlert), alertHandler.Close)
		alerts.GET("/history", middleware.OperationRequired(services.OpViewAlertHistory), alertHandler.History)
	}
}
