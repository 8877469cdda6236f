package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SafeZone is a named polygonal area a tourist is expected to remain
// within. Ring is an ordered list of vertices; the first and last vertex
// are joined implicitly. A valid ring has at least 3 distinct vertices.
type SafeZone struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required,min=3"`
	Description string             `json:"description" bson:"description"`
	Ring        [][]float64        `json:"ring" bson:"ring" validate:"required,min=3"`
	IsActive    bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
