package interfaces

import (
	"context"

	"safetour/internal/models"
)

type ZoneRepository interface {
	Create(ctx context.Context, zone *models.SafeZone) error
	GetByName(ctx context.Context, name string) (*models.SafeZone, error)
	ListActive(ctx context.Context) ([]*models.SafeZone, error)
}
