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

// CacheService mirrors the operations the repositories borrow from the
// redis client.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type alertRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewAlertRepository(db *mongo.Database, cache CacheService) interfaces.AlertRepository {
	return &alertRepository{
		collection: db.Collection("alerts"),
		cache:      cache,
	}
}

const activeAlertCacheTTL = 5 * time.Minute

func (r *alertRepository) Create(ctx context.Context, alert *models.EmergencyAlert) error {
	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	if alert.Status == models.AlertStatusActive {
		r.cacheAlert(ctx, alert)
	}

	return nil
}

func (r *alertRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EmergencyAlert, error) {
	if alert := r.alertFromCache(ctx, id.Hex()); alert != nil {
		return alert, nil
	}

	var alert models.EmergencyAlert
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	if alert.Status == models.AlertStatusActive {
		r.cacheAlert(ctx, &alert)
	}

	return &alert, nil
}

// UpdateStatusIf performs the transition as a single conditional update.
// The status filter makes the check-and-set atomic: of two concurrent
// transitions on the same alert, exactly one matches.
func (r *alertRepository) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.AlertStatus, ackBy *primitive.ObjectID) (bool, error) {
	set := bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}
	if ackBy != nil {
		set["acknowledged_by"] = *ackBy
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update alert status: %w", err)
	}

	r.invalidateAlertCache(ctx, id.Hex())

	return result.ModifiedCount == 1, nil
}

func (r *alertRepository) ListByStatus(ctx context.Context, status models.AlertStatus) ([]*models.EmergencyAlert, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *alertRepository) ListAll(ctx context.Context) ([]*models.EmergencyAlert, error) {
	return r.find(ctx, bson.M{})
}

func (r *alertRepository) find(ctx context.Context, filter bson.M) ([]*models.EmergencyAlert, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*models.EmergencyAlert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}

	return alerts, nil
}

func (r *alertRepository) cacheAlert(ctx context.Context, alert *models.EmergencyAlert) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, alertCacheKey(alert.ID.Hex()), alert, activeAlertCacheTTL)
}

func (r *alertRepository) alertFromCache(ctx context.Context, id string) *models.EmergencyAlert {
	if r.cache == nil {
		return nil
	}

	var alert models.EmergencyAlert
	if err := r.cache.Get(ctx, alertCacheKey(id), &alert); err != nil {
		return nil
	}
	return &alert
}

func (r *alertRepository) invalidateAlertCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, alertCacheKey(id))
}

func alertCacheKey(id string) string {
	return "alert:" + id
}
