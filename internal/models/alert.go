package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusClosed       AlertStatus = "closed"
)

// EmergencyAlert records a single emergency event for a tourist, either an
// explicit SOS or a safe-zone exit. Status only moves forward
// (active -> acknowledged -> closed); closed alerts are kept as an audit
// trail and never deleted. AcknowledgedBy is the account that engaged and
// survives the close transition.
type EmergencyAlert struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TouristID      primitive.ObjectID  `json:"tourist_id" bson:"tourist_id" validate:"required"`
	Location       GeoPoint            `json:"location" bson:"location" validate:"required"`
	Status         AlertStatus         `json:"status" bson:"status" default:"active"`
	Message        string              `json:"message" bson:"message"`
	ZoneName       string              `json:"zone_name,omitempty" bson:"zone_name,omitempty"`
	AcknowledgedBy *primitive.ObjectID `json:"acknowledged_by" bson:"acknowledged_by"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" bson:"updated_at"`
}
