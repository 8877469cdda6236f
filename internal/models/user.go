package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin         UserRole = "admin"
	RolePolice        UserRole = "police"
	RoleTourist       UserRole = "tourist"
	RoleCybersecurity UserRole = "cybersecurity"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RolePolice, RoleTourist, RoleCybersecurity:
		return true
	}
	return false
}

// User is an account in the system. The role is fixed at registration and
// the username is globally unique. Accounts are deactivated, never deleted.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username" validate:"required,min=3,max=50"`
	Password  string             `json:"-" bson:"password"`
	Role      UserRole           `json:"role" bson:"role" validate:"required"`
	IsActive  bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
