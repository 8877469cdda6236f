package utils

import "time"

// Application Constants
const (
	AppName    = "SafeTour"
	AppVersion = "1.0.0"

	// Authentication
	JWTAccessTokenTTL  = 30 * time.Minute
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Response status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "An internal error occurred"
	ErrUnauthorized     = "Authentication required"
	ErrForbiddenMsg     = "You are not allowed to perform this action"

	// Geofence
	ZoneSnapshotTTL = 30 * time.Second

	// Login throttling
	MaxLoginAttempts = 5
	LoginAttemptTTL  = 15 * time.Minute
)
