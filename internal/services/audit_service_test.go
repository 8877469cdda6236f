package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"safetour/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuditFixture(t *testing.T) (AuditService, *memoryLogRepo) {
	t.Helper()
	logRepo := newMemoryLogRepo()
	return NewAuditService(logRepo, testLogger(t)), logRepo
}

func auditActor(role models.UserRole) *models.User {
	return &models.User{ID: primitive.NewObjectID(), Username: "actor", Role: role, IsActive: true}
}

func TestListAccessLogsGated(t *testing.T) {
	service, _ := newAuditFixture(t)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	service.RecordAccess(ctx, &userID, "/api/v1/alerts/sos", "POST", "tourist", true)
	service.RecordAccess(ctx, nil, "/api/v1/auth/login", "POST", "unauthenticated", false)

	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleCybersecurity} {
		logs, err := service.ListAccessLogs(ctx, auditActor(role))
		require.NoError(t, err, "role %s", role)
		assert.Len(t, logs, 2)
	}

	for _, role := range []models.UserRole{models.RoleTourist, models.RolePolice} {
		_, err := service.ListAccessLogs(ctx, auditActor(role))
		assert.ErrorIs(t, err, ErrForbidden, "role %s", role)
	}
}

func TestListFailedLogins(t *testing.T) {
	service, _ := newAuditFixture(t)
	ctx := context.Background()

	service.RecordFailedLogin(ctx, "wanderer", "203.0.113.7")

	attempts, err := service.ListFailedLogins(ctx, auditActor(models.RoleCybersecurity))
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "wanderer", attempts[0].Username)

	_, err = service.ListFailedLogins(ctx, auditActor(models.RoleTourist))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExportAccessLogsCSV(t *testing.T) {
	service, _ := newAuditFixture(t)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	service.RecordAccess(ctx, &userID, "/api/v1/alerts/sos", "POST", "tourist", true)
	service.RecordAccess(ctx, nil, "/api/v1/auth/login", "POST", "unauthenticated", false)

	data, contentType, err := service.ExportAccessLogs(ctx, auditActor(models.RoleAdmin), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, []string{"id", "user_id", "endpoint", "method", "role", "is_successful", "timestamp"}, records[0])
	assert.Equal(t, userID.Hex(), records[1][1])
	assert.Equal(t, "/api/v1/alerts/sos", records[1][2])
	assert.Equal(t, "true", records[1][5])
	assert.Equal(t, "", records[2][1], "anonymous access has no user id")
	assert.Equal(t, "false", records[2][5])
}

func TestExportAccessLogsJSON(t *testing.T) {
	service, _ := newAuditFixture(t)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	service.RecordAccess(ctx, &userID, "/api/v1/tourists/me", "GET", "tourist", true)

	data, contentType, err := service.ExportAccessLogs(ctx, auditActor(models.RoleCybersecurity), "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var logs []*models.AccessLog
	require.NoError(t, json.Unmarshal(data, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "/api/v1/tourists/me", logs[0].Endpoint)
}

func TestExportAccessLogsDefaultsToCSV(t *testing.T) {
	service, _ := newAuditFixture(t)

	_, contentType, err := service.ExportAccessLogs(context.Background(), auditActor(models.RoleAdmin), "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
}

func TestExportAccessLogsRejectsUnknownFormat(t *testing.T) {
	service, _ := newAuditFixture(t)

	_, _, err := service.ExportAccessLogs(context.Background(), auditActor(models.RoleAdmin), "xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportAccessLogsGated(t *testing.T) {
	service, _ := newAuditFixture(t)

	_, _, err := service.ExportAccessLogs(context.Background(), auditActor(models.RolePolice), "csv")
	assert.ErrorIs(t, err, ErrForbidden)
}
