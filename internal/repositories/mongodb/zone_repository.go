package mongodb

import (
	"context"
	"fmt"
	"time"

	"safetour/internal/models"
	"safetour/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type zoneRepository struct {
	collection *mongo.Collection
}

func NewZoneRepository(db *mongo.Database) interfaces.ZoneRepository {
	return &zoneRepository{
		collection: db.Collection("safe_zones"),
	}
}

func (r *zoneRepository) Create(ctx context.Context, zone *models.SafeZone) error {
	zone.ID = primitive.NewObjectID()
	zone.CreatedAt = time.Now()
	zone.UpdatedAt = time.Now()
	zone.IsActive = true

	_, err := r.collection.InsertOne(ctx, zone)
	if err != nil {
		return fmt.Errorf("failed to create safe zone: %w", err)
	}

	return nil
}

func (r *zoneRepository) GetByName(ctx context.Context, name string) (*models.SafeZone, error) {
	var zone models.SafeZone
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&zone)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get safe zone: %w", err)
	}

	return &zone, nil
}

func (r *zoneRepository) ListActive(ctx context.Context) ([]*models.SafeZone, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list safe zones: %w", err)
	}
	defer cursor.Close(ctx)

	var zones []*models.SafeZone
	if err := cursor.All(ctx, &zones); err != nil {
		return nil, fmt.Errorf("failed to decode safe zones: %w", err)
	}

	return zones, nil
}
