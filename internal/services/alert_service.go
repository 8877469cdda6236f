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

type SOSRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude_range"`
	Longitude float64 `json:"longitude" validate:"longitude_range"`
	Message   string  `json:"message"`
}

// AlertService owns the emergency alert lifecycle. Every transition is
// gated by the access policy and applied as an atomic check-and-set, so
// two concurrent acknowledgements of the same alert cannot both succeed.
type AlertService interface {
	RaiseSOS(ctx context.Context, actor *models.User, request *SOSRequest) (*models.EmergencyAlert, error)
	RaiseViolation(ctx context.Context, signal ViolationSignal) (*models.EmergencyAlert, error)
	Acknowledge(ctx context.Context, alertID primitive.ObjectID, actor *models.User) (*models.EmergencyAlert, error)
	Close(ctx context.Context, alertID primitive.ObjectID, actor *models.User) (*models.EmergencyAlert, error)
	ListActive(ctx context.Context, actor *models.User) ([]*models.EmergencyAlert, error)
	History(ctx context.Context, actor *models.User) ([]*models.EmergencyAlert, error)
}

type alertService struct {
	alertRepo   interfaces.AlertRepository
	touristRepo interfaces.TouristRepository
	logger      *logger.Logger
}

func NewAlertService(
	alertRepo interfaces.AlertRepository,
	touristRepo interfaces.TouristRepository,
	logger *logger.Logger,
) AlertService {
	return &alertService{
		alertRepo:   alertRepo,
		touristRepo: touristRepo,
		logger:      logger,
	}
}

// RaiseSOS creates a new active alert for the actor's tourist profile.
// Repeated raises create distinct alerts; each SOS is a new event.
func (s *alertService) RaiseSOS(ctx context.Context, actor *models.User, request *SOSRequest) (*models.EmergencyAlert, error) {
	if !Permits(actor.Role, OpRaiseSOS) {
		return nil, ErrForbidden
	}

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

	alert := &models.EmergencyAlert{
		TouristID: tourist.ID,
		Location:  models.NewGeoPoint(request.Latitude, request.Longitude),
		Status:    models.AlertStatusActive,
		Message:   request.Message,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.WithError(err).WithTouristID(tourist.ID).Error("Failed to create SOS alert")
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	s.logger.WithAlertID(alert.ID).WithTouristID(tourist.ID).Info("SOS alert raised")
	return alert, nil
}

// RaiseViolation creates an alert from a geofence violation signal. This
// is a system-originated raise and carries no actor.
func (s *alertService) RaiseViolation(ctx context.Context, signal ViolationSignal) (*models.EmergencyAlert, error) {
	tourist, err := s.touristRepo.GetByID(ctx, signal.TouristID)
	if err != nil || tourist == nil {
		return nil, ErrTouristNotFound
	}

	alert := &models.EmergencyAlert{
		TouristID: tourist.ID,
		Location:  signal.Point,
		Status:    models.AlertStatusActive,
		Message:   fmt.Sprintf("Tourist exited safe zone %q", signal.ZoneName),
		ZoneName:  signal.ZoneName,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.WithError(err).WithTouristID(tourist.ID).Error("Failed to create violation alert")
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	s.logger.WithAlertID(alert.ID).WithField("zone_name", signal.ZoneName).Warn("Geofence violation alert raised")
	return alert, nil
}

// Acknowledge moves an active alert to acknowledged and records the
// acting account. A second acknowledgement fails with
// ErrInvalidTransition because the check-and-set no longer matches.
func (s *alertService) Acknowledge(ctx context.Context, alertID primitive.ObjectID, actor *models.User) (*models.EmergencyAlert, error) {
	if !Permits(actor.Role, OpAcknowledgeAlert) {
		return nil, ErrForbidden
	}

	alert, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil || alert == nil {
		return nil, ErrAlertNotFound
	}

	ok, err := s.alertRepo.UpdateStatusIf(ctx, alertID, models.AlertStatusActive, models.AlertStatusAcknowledged, &actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	s.logger.WithAlertID(alertID).WithUserID(actor.ID).Info("Alert acknowledged")
	return s.alertRepo.GetByID(ctx, alertID)
}

// Close moves an acknowledged alert to its terminal state. Closing an
// alert that was never acknowledged is rejected: an alert must be
// attended before it is resolved. AcknowledgedBy is left untouched.
func (s *alertService) Close(ctx context.Context, alertID primitive.ObjectID, actor *models.User) (*models.EmergencyAlert, error) {
	if !Permits(actor.Role, OpCloseAlert) {
		return nil, ErrForbidden
	}

	alert, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil || alert == nil {
		return nil, ErrAlertNotFound
	}

	ok, err := s.alertRepo.UpdateStatusIf(ctx, alertID, models.AlertStatusAcknowledged, models.AlertStatusClosed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to close alert: %w", err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	s.logger.WithAlertID(alertID).WithUserID(actor.ID).Info("Alert closed")
	return s.alertRepo.GetByID(ctx, alertID)
}

func (s *alertService) ListActive(ctx context.Context, actor *models.User) ([]*models.EmergencyAlert, error) {
	if !Permits(actor.Role, OpViewActiveAlerts) {
		return nil, ErrForbidden
	}
	return s.alertRepo.ListByStatus(ctx, models.AlertStatusActive)
}

func (s *alertService) History(ctx context.Context, actor *models.User) ([]*models.EmergencyAlert, error) {
	if !Permits(actor.Role, OpViewAlertHistory) {
		return nil, ErrForbidden
	}
	return s.alertRepo.ListAll(ctx)
}

// alertSink is the production EventSink: each violation signal becomes a
// persisted alert.
type alertSink struct {
	alerts AlertService
}

func NewAlertSink(alerts AlertService) EventSink {
	return &alertSink{alerts: alerts}
}

func (s *alertSink) Emit(ctx context.Context, signal ViolationSignal) error {
	_, err := s.alerts.RaiseViolation(ctx, signal)
	return err
}
