package services

import (
	"context"
	"fmt"

	"safetour/internal/models"
	"safetour/internal/repositories/interfaces"
	"safetour/internal/utils"
	"safetour/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateProfileRequest struct {
	FullName      string `json:"full_name" validate:"required,min=3"`
	PassportID    string `json:"passport_id" validate:"required,min=5"`
	ContactNumber string `json:"contact_number" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	FullName      string `json:"full_name"`
	ContactNumber string `json:"contact_number"`
}

type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude_range"`
	Longitude float64 `json:"longitude" validate:"longitude_range"`
}

type TouristService interface {
	CreateProfile(ctx context.Context, actor *models.User, request *CreateProfileRequest) (*models.Tourist, error)
	GetOwnProfile(ctx context.Context, actor *models.User) (*models.Tourist, error)
	GetByID(ctx context.Context, actor *models.User, touristID primitive.ObjectID) (*models.Tourist, error)
	UpdateProfile(ctx context.Context, actor *models.User, request *UpdateProfileRequest) (*models.Tourist, error)
	ListAll(ctx context.Context, actor *models.User) ([]*models.Tourist, error)

	// UpdateLocation writes the tourist's last-known point and feeds it
	// through the geofence engine. Zone-exit signals raised here are the
	// only alert source besides an explicit SOS.
	UpdateLocation(ctx context.Context, actor *models.User, request *LocationUpdateRequest) (*models.Tourist, error)
}

type touristService struct {
	touristRepo interfaces.TouristRepository
	geofence    GeofenceService
	logger      *logger.Logger
}

func NewTouristService(
	touristRepo interfaces.TouristRepository,
	geofence GeofenceService,
	logger *logger.Logger,
) TouristService {
	return &touristService{
		touristRepo: touristRepo,
		geofence:    geofence,
		logger:      logger,
	}
}

func (s *touristService) CreateProfile(ctx context.Context, actor *models.User, request *CreateProfileRequest) (*models.Tourist, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if existing, _ := s.touristRepo.GetByUserID(ctx, actor.ID); existing != nil {
		return nil, ErrProfileExists
	}

	tourist := &models.Tourist{
		UserID:        actor.ID,
		FullName:      request.FullName,
		PassportID:    request.PassportID,
		ContactNumber: request.ContactNumber,
	}

	if err := s.touristRepo.Create(ctx, tourist); err != nil {
		s.logger.WithError(err).WithUserID(actor.ID).Error("Failed to create tourist profile")
		return nil, fmt.Errorf("failed to create tourist profile: %w", err)
	}

	s.logger.WithTouristID(tourist.ID).WithUserID(actor.ID).Info("Tourist profile created")
	return tourist, nil
}

func (s *touristService) GetOwnProfile(ctx context.Context, actor *models.User) (*models.Tourist, error) {
	tourist, err := s.touristRepo.GetByUserID(ctx, actor.ID)
	if err != nil || tourist == nil {
		return nil, ErrTouristNotFound
	}
	return tourist, nil
}

func (s *touristService) GetByID(ctx context.Context, actor *models.User, touristID primitive.ObjectID) (*models.Tourist, error) {
	if !Permits(actor.Role, OpViewTourists) {
		return nil, ErrForbidden
	}

	tourist, err := s.touristRepo.GetByID(ctx, touristID)
	if err != nil || tourist == nil {
		return nil, ErrTouristNotFound
	}
	return tourist, nil
}

func (s *touristService) UpdateProfile(ctx context.Context, actor *models.User, request *UpdateProfileRequest) (*models.Tourist, error) {
	tourist, err := s.touristRepo.GetByUserID(ctx, actor.ID)
	if err != nil || tourist == nil {
		return nil, ErrTouristNotFound
	}

	updates := make(map[string]interface{})
	if request.FullName != "" {
		updates["full_name"] = request.FullName
	}
	if request.ContactNumber != "" {
		updates["contact_number"] = request.ContactNumber
	}

	if len(updates) > 0 {
		if err := s.touristRepo.Update(ctx, tourist.ID, updates); err != nil {
			return nil, fmt.Errorf("failed to update tourist profile: %w", err)
		}
	}

	return s.touristRepo.GetByID(ctx, tourist.ID)
}

func (s *touristService) ListAll(ctx context.Context, actor *models.User) ([]*models.Tourist, error) {
	if !Permits(actor.Role, OpViewTourists) {
		return nil, ErrForbidden
	}
	return s.touristRepo.List(ctx)
}

func (s *touristService) UpdateLocation(ctx context.Context, actor *models.User, request *LocationUpdateRequest) (*models.Tourist, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !utils.IsValidCoordinates(request.Latitude, request.Longitude) {
		return nil, ErrInvalidPoint
	}

	tourist, err := s.touristRepo.GetByUserID(ctx, actor.ID)
	if err != nil || tourist == nil {
		return nil, ErrTouristNotFound
	}

	point := models.NewGeoPoint(request.Latitude, request.Longitude)
	if err := s.touristRepo.UpdateLocation(ctx, tourist.ID, point); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	// Evaluation runs after the location write so a violation alert
	// always refers to the stored point. Signal emission happens inside
	// the engine; a failed evaluation must not undo the location update.
	if _, err := s.geofence.Evaluate(ctx, tourist.ID, request.Latitude, request.Longitude); err != nil {
		s.logger.WithError(err).WithTouristID(tourist.ID).Error("Geofence evaluation failed")
	}

	return s.touristRepo.GetByID(ctx, tourist.ID)
}
