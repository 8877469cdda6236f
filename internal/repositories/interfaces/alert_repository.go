package interfaces

import (
	"context"

	"safetour/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *models.EmergencyAlert) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EmergencyAlert, error)

	// UpdateStatusIf advances the alert from one status to another in a
	// single atomic check-and-set. It reports false when the alert was not
	// in the expected status, which serializes concurrent transitions on
	// the same alert. ackBy is recorded only when non-nil.
	UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.AlertStatus, ackBy *primitive.ObjectID) (bool, error)

	ListByStatus(ctx context.Context, status models.AlertStatus) ([]*models.EmergencyAlert, error)
	ListAll(ctx context.Context) ([]*models.EmergencyAlert, error)
}
