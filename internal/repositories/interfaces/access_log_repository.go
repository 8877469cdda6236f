package interfaces

import (
	"context"

	"safetour/internal/models"
)

type AccessLogRepository interface {
	CreateAccess(ctx context.Context, log *models.AccessLog) error
	CreateFailedLogin(ctx context.Context, attempt *models.FailedLoginAttempt) error
	ListAccess(ctx context.Context) ([]*models.AccessLog, error)
	ListFailedLogins(ctx context.Context) ([]*models.FailedLoginAttempt, error)
}
