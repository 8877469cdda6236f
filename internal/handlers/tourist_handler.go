package handlers

import (
	"safetour/internal/middleware"
	"safetour/internal/services"
	"safetour/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TouristHandler struct {
	touristService services.TouristService
}

func NewTouristHandler(touristService services.TouristService) *TouristHandler {
	return &TouristHandler{
		touristService: touristService,
	}
}

// CreateProfile registers a tourist profile for the authenticated account
// @Router /tourists [post]
func (h *TouristHandler) CreateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.CreateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	tourist, err := h.touristService.CreateProfile(c.Request.Context(), user, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Tourist profile created", tourist)
}

// GetOwnProfile returns the caller's tourist profile
// @Router /tourists/me [get]
func (h *TouristHandler) GetOwnProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	tourist, err := h.touristService.GetOwnProfile(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Tourist profile", tourist)
}

// UpdateProfile updates the caller's profile fields
// @Router /tourists/me [put]
func (h *TouristHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	tourist, err := h.touristService.UpdateProfile(c.Request.Context(), user, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Tourist profile updated", tourist)
}

// UpdateLocation stores the caller's position and runs geofence checks
// @Router /tourists/me/location [put]
func (h *TouristHandler) UpdateLocation(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.LocationUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	tourist, err := h.touristService.UpdateLocation(c.Request.Context(), user, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Location updated", tourist)
}

// GetByID returns a tourist profile by ID, for authority roles
// @Router /tourists/{id} [get]
func (h *TouristHandler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	touristID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tourist ID")
		return
	}

	tourist, err := h.touristService.GetByID(c.Request.Context(), user, touristID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Tourist profile", tourist)
}

// List returns all tourist profiles, for authority roles
// @Router /tourists [get]
func (h *TouristHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	tourists, err := h.touristService.ListAll(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Tourists", tourists)
}
