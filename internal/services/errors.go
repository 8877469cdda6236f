package services

import "errors"

// Authentication and authorization failures. These are terminal for the
// calling operation and are never retried.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// Lifecycle failures. Surfaced to the caller as client errors, never
// coerced into success.
var (
	ErrAlertNotFound      = errors.New("alert not found")
	ErrInvalidTransition  = errors.New("alert status does not permit this transition")
	ErrTouristNotFound    = errors.New("tourist profile not found")
	ErrProfileExists      = errors.New("tourist profile already exists for this user")
	ErrUserNotFound       = errors.New("user not found")
)

// Geometric input failures, rejected at evaluation entry.
var (
	ErrInvalidPoint = errors.New("coordinates out of range")
	ErrInvalidZone  = errors.New("zone ring is degenerate")
)

// ErrUnsupportedFormat rejects export formats other than csv and json.
var ErrUnsupportedFormat = errors.New("unsupported export format")
