package services

import (
	"context"
	"testing"

	"safetour/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type alertFixture struct {
	service     AlertService
	alertRepo   *memoryAlertRepo
	touristRepo *memoryTouristRepo

	touristUser *models.User
	tourist     *models.Tourist
	police      *models.User
	admin       *models.User
}

func newAlertFixture(t *testing.T) *alertFixture {
	t.Helper()
	ctx := context.Background()

	alertRepo := newMemoryAlertRepo()
	touristRepo := newMemoryTouristRepo()

	touristUser := &models.User{Username: "wanderer", Role: models.RoleTourist, IsActive: true}
	touristUser.ID = primitive.NewObjectID()

	tourist := &models.Tourist{
		UserID:        touristUser.ID,
		FullName:      "Asha Verma",
		PassportID:    "P1234567",
		ContactNumber: "+911234567890",
	}
	require.NoError(t, touristRepo.Create(ctx, tourist))

	police := &models.User{Username: "officer", Role: models.RolePolice, IsActive: true}
	police.ID = primitive.NewObjectID()
	admin := &models.User{Username: "root", Role: models.RoleAdmin, IsActive: true}
	admin.ID = primitive.NewObjectID()

	return &alertFixture{
		service:     NewAlertService(alertRepo, touristRepo, testLogger(t)),
		alertRepo:   alertRepo,
		touristRepo: touristRepo,
		touristUser: touristUser,
		tourist:     tourist,
		police:      police,
		admin:       admin,
	}
}

func TestRaiseSOS(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	alert, err := f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{
		Latitude:  28.6139,
		Longitude: 77.2090,
		Message:   "need help",
	})
	require.NoError(t, err)

	assert.Equal(t, models.AlertStatusActive, alert.Status)
	assert.Equal(t, f.tourist.ID, alert.TouristID)
	assert.Equal(t, "need help", alert.Message)
	assert.Nil(t, alert.AcknowledgedBy)
	assert.InDelta(t, 28.6139, alert.Location.Latitude(), 1e-9)
	assert.InDelta(t, 77.2090, alert.Location.Longitude(), 1e-9)
}

func TestRaiseSOSRepeatedCreatesDistinctAlerts(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()
	request := &SOSRequest{Latitude: 28.6, Longitude: 77.2}

	first, err := f.service.RaiseSOS(ctx, f.touristUser, request)
	require.NoError(t, err)
	second, err := f.service.RaiseSOS(ctx, f.touristUser, request)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	active, err := f.service.ListActive(ctx, f.police)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestRaiseSOSDenied(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()
	request := &SOSRequest{Latitude: 28.6, Longitude: 77.2}

	_, err := f.service.RaiseSOS(ctx, f.police, request)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.service.RaiseSOS(ctx, f.admin, request)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRaiseSOSWithoutProfile(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	orphan := &models.User{Username: "noprofile", Role: models.RoleTourist, IsActive: true}
	orphan.ID = primitive.NewObjectID()

	_, err := f.service.RaiseSOS(ctx, orphan, &SOSRequest{Latitude: 28.6, Longitude: 77.2})
	assert.ErrorIs(t, err, ErrTouristNotFound)
}

func TestRaiseSOSRejectsBadCoordinates(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	_, err := f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 95, Longitude: 77.2})
	assert.Error(t, err)

	_, err = f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 28.6, Longitude: -200})
	assert.Error(t, err)

	// Latitude and longitude zero is a real point, not a missing one.
	_, err = f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 0, Longitude: 0})
	assert.NoError(t, err)
}

func TestAcknowledge(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	alert, err := f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 28.6, Longitude: 77.2})
	require.NoError(t, err)

	acked, err := f.service.Acknowledge(ctx, alert.ID, f.police)
	require.NoError(t, err)

	assert.Equal(t, models.AlertStatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AcknowledgedBy)
	assert.Equal(t, f.police.ID, *acked.AcknowledgedBy)
}

func TestAcknowledgeTwice(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	alert, err := f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 28.6, Longitude: 77.2})
	require.NoError(t, err)

	_, err = f.service.Acknowledge(ctx, alert.ID, f.police)
	require.NoError(t, err)

	// Second responder loses the race; first acknowledger stands.
	_, err = f.service.Acknowledge(ctx, alert.ID, f.admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	current, err := f.alertRepo.GetByID(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, f.police.ID, *current.AcknowledgedBy)
}

func TestAcknowledgeDenied(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	alert, err := f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 28.6, Longitude: 77.2})
	require.NoError(t, err)

	_, err = f.service.Acknowledge(ctx, alert.ID, f.touristUser)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAcknowledgeUnknownAlert(t *testing.T) {
	f := newAlertFixture(t)

	_, err := f.service.Acknowledge(context.Background(), primitive.NewObjectID(), f.police)
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestCloseRequiresAcknowledgement(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	alert, err := f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 28.6, Longitude: 77.2})
	require.NoError(t, err)

	_, err = f.service.Close(ctx, alert.ID, f.police)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.service.Acknowledge(ctx, alert.ID, f.police)
	require.NoError(t, err)

	closed, err := f.service.Close(ctx, alert.ID, f.admin)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusClosed, closed.Status)

	// AcknowledgedBy survives the close.
	require.NotNil(t, closed.AcknowledgedBy)
	assert.Equal(t, f.police.ID, *closed.AcknowledgedBy)

	// Closed is terminal.
	_, err = f.service.Close(ctx, alert.ID, f.police)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.service.Acknowledge(ctx, alert.ID, f.police)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListActiveAndHistory(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	first, err := f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 28.6, Longitude: 77.2})
	require.NoError(t, err)
	_, err = f.service.RaiseSOS(ctx, f.touristUser, &SOSRequest{Latitude: 28.7, Longitude: 77.3})
	require.NoError(t, err)

	_, err = f.service.Acknowledge(ctx, first.ID, f.police)
	require.NoError(t, err)

	active, err := f.service.ListActive(ctx, f.police)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	history, err := f.service.History(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = f.service.ListActive(ctx, f.touristUser)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.service.History(ctx, f.touristUser)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRaiseViolation(t *testing.T) {
	f := newAlertFixture(t)
	ctx := context.Background()

	alert, err := f.service.RaiseViolation(ctx, ViolationSignal{
		TouristID: f.tourist.ID,
		Point:     models.NewGeoPoint(28.9, 77.5),
		ZoneName:  "Red Fort Perimeter",
	})
	require.NoError(t, err)

	assert.Equal(t, models.AlertStatusActive, alert.Status)
	assert.Equal(t, "Red Fort Perimeter", alert.ZoneName)
	assert.Contains(t, alert.Message, "Red Fort Perimeter")
}

func TestRaiseViolationUnknownTourist(t *testing.T) {
	f := newAlertFixture(t)

	_, err := f.service.RaiseViolation(context.Background(), ViolationSignal{
		TouristID: primitive.NewObjectID(),
		Point:     models.NewGeoPoint(28.9, 77.5),
		ZoneName:  "Red Fort Perimeter",
	})
	assert.ErrorIs(t, err, ErrTouristNotFound)
}
