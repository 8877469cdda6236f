package routes

import (
	"safetour/internal/handlers"
	"safetour/internal/middleware"
	"safetour/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupLogRoutes sets up routes for the audit trail
func SetupLogRoutes(r *gin.RouterGroup, logHandler *handlers.LogHandler, authService services.AuthService) {
	logs := r.Group("/logs")
	logs.Use(middleware.AuthRequired(authService), middleware.OperationRequired(services.OpViewAccessLogs))
	{
		logs.GET("/access", logHandler.ListAccessLogs)
		logs.GET("/failed-logins", logHandler.ListFailedLogins)
	}

	export := r.Group("/logs")
	export.Use(middleware.AuthRequired(authService), middleware.OperationRequired(services.OpExportLogs))
	{
		export.GET("/export", logHandler.Export)
	}
}
