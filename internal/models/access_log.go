package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessLog records a single API access. UserID is nil for requests made
// without a valid token.
type AccessLog struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID       *primitive.ObjectID `json:"user_id" bson:"user_id"`
	Endpoint     string              `json:"endpoint" bson:"endpoint" validate:"required"`
	Method       string              `json:"method" bson:"method" validate:"required"`
	Role         string              `json:"role" bson:"role"`
	IsSuccessful bool                `json:"is_successful" bson:"is_successful"`
	Timestamp    time.Time           `json:"timestamp" bson:"timestamp"`
}

type FailedLoginAttempt struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username" validate:"required"`
	IPAddress string             `json:"ip_address" bson:"ip_address"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
}
