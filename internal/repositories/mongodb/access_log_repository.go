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

type accessLogRepository struct {
	accessLogs   *mongo.Collection
	failedLogins *mongo.Collection
}

func NewAccessLogRepository(db *mongo.Database) interfaces.AccessLogRepository {
	return &accessLogRepository{
		accessLogs:   db.Collection("access_logs"),
		failedLogins: db.Collection("failed_login_attempts"),
	}
}

func (r *accessLogRepository) CreateAccess(ctx context.Context, log *models.AccessLog) error {
	log.ID = primitive.NewObjectID()
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}

	_, err := r.accessLogs.InsertOne(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to create access log: %w", err)
	}

	return nil
}

func (r *accessLogRepository) CreateFailedLogin(ctx context.Context, attempt *models.FailedLoginAttempt) error {
	attempt.ID = primitive.NewObjectID()
	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = time.Now()
	}

	_, err := r.failedLogins.InsertOne(ctx, attempt)
	if err != nil {
		return fmt.Errorf("failed to create failed-login log: %w", err)
	}

	return nil
}

func (r *accessLogRepository) ListAccess(ctx context.Context) ([]*models.AccessLog, error) {
	cursor, err := r.accessLogs.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list access logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []*models.AccessLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode access logs: %w", err)
	}

	return logs, nil
}

func (r *accessLogRepository) ListFailedLogins(ctx context.Context) ([]*models.FailedLoginAttempt, error) {
	cursor, err := r.failedLogins.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list failed logins: %w", err)
	}
	defer cursor.Close(ctx)

	var attempts []*models.FailedLoginAttempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, fmt.Errorf("failed to decode failed logins: %w", err)
	}

	return attempts, nil
}
