package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"safetour/internal/models"
	"safetour/internal/repositories/interfaces"
	"safetour/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditService records API accesses and failed logins and exposes them to
// admin and cybersecurity reviewers, including CSV/JSON export.
type AuditService interface {
	RecordAccess(ctx context.Context, userID *primitive.ObjectID, endpoint, method, role string, successful bool)
	RecordFailedLogin(ctx context.Context, username, ipAddress string)

	ListAccessLogs(ctx context.Context, actor *models.User) ([]*models.AccessLog, error)
	ListFailedLogins(ctx context.Context, actor *models.User) ([]*models.FailedLoginAttempt, error)
	ExportAccessLogs(ctx context.Context, actor *models.User, format string) ([]byte, string, error)
}

type auditService struct {
	logRepo interfaces.AccessLogRepository
	logger  *logger.Logger
}

func NewAuditService(logRepo interfaces.AccessLogRepository, logger *logger.Logger) AuditService {
	return &auditService{
		logRepo: logRepo,
		logger:  logger,
	}
}

// RecordAccess is best-effort: a failed audit write is logged but never
// fails the request being audited.
func (s *auditService) RecordAccess(ctx context.Context, userID *primitive.ObjectID, endpoint, method, role string, successful bool) {
	entry := &models.AccessLog{
		UserID:       userID,
		Endpoint:     endpoint,
		Method:       method,
		Role:         role,
		IsSuccessful: successful,
		Timestamp:    time.Now(),
	}

	if err := s.logRepo.CreateAccess(ctx, entry); err != nil {
		s.logger.WithError(err).Warn("Failed to write access log")
	}
}

func (s *auditService) RecordFailedLogin(ctx context.Context, username, ipAddress string) {
	attempt := &models.FailedLoginAttempt{
		Username:  username,
		IPAddress: ipAddress,
		Timestamp: time.Now(),
	}

	if err := s.logRepo.CreateFailedLogin(ctx, attempt); err != nil {
		s.logger.WithError(err).Warn("Failed to write failed-login log")
	}

	s.logger.LogSecurityEvent("failed_login", "low", map[string]interface{}{
		"username": username,
		"ip":       ipAddress,
	})
}

func (s *auditService) ListAccessLogs(ctx context.Context, actor *models.User) ([]*models.AccessLog, error) {
	if !Permits(actor.Role, OpViewAccessLogs) {
		return nil, ErrForbidden
	}
	return s.logRepo.ListAccess(ctx)
}

func (s *auditService) ListFailedLogins(ctx context.Context, actor *models.User) ([]*models.FailedLoginAttempt, error) {
	if !Permits(actor.Role, OpViewAccessLogs) {
		return nil, ErrForbidden
	}
	return s.logRepo.ListFailedLogins(ctx)
}

// ExportAccessLogs renders the access log as CSV or JSON and returns the
// payload with its content type.
func (s *auditService) ExportAccessLogs(ctx context.Context, actor *models.User, format string) ([]byte, string, error) {
	if !Permits(actor.Role, OpExportLogs) {
		return nil, "", ErrForbidden
	}

	logs, err := s.logRepo.ListAccess(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load access logs: %w", err)
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(logs, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	case "csv", "":
		return exportCSV(logs)
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func exportCSV(logs []*models.AccessLog) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "user_id", "endpoint", "method", "role", "is_successful", "timestamp"}); err != nil {
		return nil, "", err
	}

	for _, entry := range logs {
		userID := ""
		if entry.UserID != nil {
			userID = entry.UserID.Hex()
		}
		record := []string{
			entry.ID.Hex(),
			userID,
			entry.Endpoint,
			entry.Method,
			entry.Role,
			strconv.FormatBool(entry.IsSuccessful),
			entry.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), "text/csv", nil
}
