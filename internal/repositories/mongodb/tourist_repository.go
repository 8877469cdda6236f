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

type touristRepository struct {
	collection *mongo.Collection
}

func NewTouristRepository(db *mongo.Database) interfaces.TouristRepository {
	return &touristRepository{
		collection: db.Collection("tourists"),
	}
}

func (r *touristRepository) Create(ctx context.Context, tourist *models.Tourist) error {
	tourist.ID = primitive.NewObjectID()
	tourist.CreatedAt = time.Now()
	tourist.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, tourist)
	if err != nil {
		return fmt.Errorf("failed to create tourist: %w", err)
	}

	return nil
}

func (r *touristRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tourist, error) {
	var tourist models.Tourist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tourist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tourist: %w", err)
	}

	return &tourist, nil
}

func (r *touristRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Tourist, error) {
	var tourist models.Tourist
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&tourist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tourist by user: %w", err)
	}

	return &tourist, nil
}

func (r *touristRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update tourist: %w", err)
	}

	return nil
}

func (r *touristRepository) UpdateLocation(ctx context.Context, id primitive.ObjectID, location models.GeoPoint) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_location": location, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update tourist location: %w", err)
	}

	return nil
}

func (r *touristRepository) List(ctx context.Context) ([]*models.Tourist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tourists: %w", err)
	}
	defer cursor.Close(ctx)

	var tourists []*models.Tourist
	if err := cursor.All(ctx, &tourists); err != nil {
		return nil, fmt.Errorf("failed to decode tourists: %w", err)
	}

	return tourists, nil
}
