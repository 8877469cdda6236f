package handlers

import (
	"context"

	"safetour/internal/middleware"
	"safetour/internal/models"
	"safetour/internal/services"
	"safetour/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AlertHandler struct {
	alertService services.AlertService
}

func NewAlertHandler(alertService services.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// RaiseSOS creates a new active alert at the caller's position
// @Router /alerts/sos [post]
func (h *AlertHandler) RaiseSOS(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.SOSRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	alert, err := h.alertService.RaiseSOS(c.Request.Context(), user, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "SOS alert raised", alert)
}

// ListActive returns alerts awaiting attention
// @Router /alerts/active [get]
func (h *AlertHandler) ListActive(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	alerts, err := h.alertService.ListActive(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Active alerts", alerts)
}

// Acknowledge transitions an active alert to acknowledged
// @Router /alerts/{id}/acknowledge [put]
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	h.transition(c, h.alertService.Acknowledge, "Alert acknowledged")
}

// Close transitions an acknowledged alert to closed
// @Router /alerts/{id}/close [put]
func (h *AlertHandler) Close(c *gin.Context) {
	h.transition(c, h.alertService.Close, "Alert closed")
}

// transition parses the alert ID and applies a single lifecycle step.
func (h *AlertHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, alertID primitive.ObjectID, actor *models.User) (*models.EmergencyAlert, error),
	message string,
) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	alertID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid alert ID")
		return
	}

	alert, err := apply(c.Request.Context(), alertID, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, message, alert)
}

// History returns the full alert log regardless of status
// @Router /alerts/history [get]
func (h *AlertHandler) History(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	alerts, err := h.alertService.History(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Alert history", alerts)
}
