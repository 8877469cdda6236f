package handlers

import (
	"fmt"
	"net/http"
	"time"

	"safetour/internal/middleware"
	"safetour/internal/services"
	"safetour/internal/utils"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	auditService services.AuditService
}

func NewLogHandler(auditService services.AuditService) *LogHandler {
	return &LogHandler{
		auditService: auditService,
	}
}

// ListAccessLogs returns the access audit trail
// @Router /logs/access [get]
func (h *LogHandler) ListAccessLogs(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	logs, err := h.auditService.ListAccessLogs(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Access logs", logs)
}

// ListFailedLogins returns recorded failed login attempts
// @Router /logs/failed-logins [get]
func (h *LogHandler) ListFailedLogins(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	attempts, err := h.auditService.ListFailedLogins(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Failed login attempts", attempts)
}

// Export streams the access log as a CSV or JSON download
// @Router /logs/export [get]
func (h *LogHandler) Export(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	format := c.DefaultQuery("format", "csv")
	data, contentType, err := h.auditService.ExportAccessLogs(c.Request.Context(), user, format)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ext := "csv"
	if contentType == "application/json" {
		ext = "json"
	}
	filename := fmt.Sprintf("access-logs-%s.%s", time.Now().Format("2006-01-02"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
