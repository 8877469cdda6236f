package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tourist is the KYC profile attached to a user account with the tourist
// role. At most one profile exists per account; LastLocation is nil until
// the first location update arrives.
type Tourist struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	FullName      string             `json:"full_name" bson:"full_name" validate:"required,min=3"`
	PassportID    string             `json:"passport_id" bson:"passport_id" validate:"required,min=5"`
	ContactNumber string             `json:"contact_number" bson:"contact_number" validate:"required,min=8"`
	LastLocation  *GeoPoint          `json:"last_location" bson:"last_location"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
