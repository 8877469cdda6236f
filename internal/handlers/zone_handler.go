package handlers

import (
	"safetour/internal/services"
	"safetour/internal/utils"

	"github.com/gin-gonic/gin"
)

type ZoneHandler struct {
	zoneService services.ZoneService
}

func NewZoneHandler(zoneService services.ZoneService) *ZoneHandler {
	return &ZoneHandler{
		zoneService: zoneService,
	}
}

// ListActive returns the active safe zones
// @Router /zones [get]
func (h *ZoneHandler) ListActive(c *gin.Context) {
	zones, err := h.zoneService.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Safe zones", zones)
}
