package interfaces

import (
	"context"

	"safetour/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TouristRepository interface {
	Create(ctx context.Context, tourist *models.Tourist) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tourist, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Tourist, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateLocation(ctx context.Context, id primitive.ObjectID, location models.GeoPoint) error
	List(ctx context.Context) ([]*models.Tourist, error)
}
