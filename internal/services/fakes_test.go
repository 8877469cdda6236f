package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"safetour/internal/models"
	"safetour/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	require.NoError(t, err)
	log.SetOutput(io.Discard)
	return log
}

// memoryUserRepo is an in-memory UserRepository.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.IsActive = active
	}
	return nil
}

// memoryTouristRepo is an in-memory TouristRepository.
type memoryTouristRepo struct {
	mu       sync.Mutex
	tourists map[primitive.ObjectID]*models.Tourist
}

func newMemoryTouristRepo() *memoryTouristRepo {
	return &memoryTouristRepo{tourists: make(map[primitive.ObjectID]*models.Tourist)}
}

func (r *memoryTouristRepo) Create(_ context.Context, tourist *models.Tourist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tourist.ID = primitive.NewObjectID()
	tourist.CreatedAt = time.Now()
	tourist.UpdatedAt = time.Now()
	copied := *tourist
	r.tourists[tourist.ID] = &copied
	return nil
}

func (r *memoryTouristRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Tourist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tourist, ok := r.tourists[id]; ok {
		copied := *tourist
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryTouristRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*models.Tourist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tourist := range r.tourists {
		if tourist.UserID == userID {
			copied := *tourist
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryTouristRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tourist, ok := r.tourists[id]
	if !ok {
		return errors.New("tourist not found")
	}
	if name, ok := updates["full_name"].(string); ok {
		tourist.FullName = name
	}
	if contact, ok := updates["contact_number"].(string); ok {
		tourist.ContactNumber = contact
	}
	tourist.UpdatedAt = time.Now()
	return nil
}

func (r *memoryTouristRepo) UpdateLocation(_ context.Context, id primitive.ObjectID, location models.GeoPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tourist, ok := r.tourists[id]
	if !ok {
		return errors.New("tourist not found")
	}
	tourist.LastLocation = &location
	tourist.UpdatedAt = time.Now()
	return nil
}

func (r *memoryTouristRepo) List(_ context.Context) ([]*models.Tourist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Tourist, 0, len(r.tourists))
	for _, tourist := range r.tourists {
		copied := *tourist
		result = append(result, &copied)
	}
	return result, nil
}

// memoryAlertRepo is an in-memory AlertRepository. UpdateStatusIf holds the
// lock across check and set, matching the atomicity of the conditional
// update in the mongo implementation.
type memoryAlertRepo struct {
	mu     sync.Mutex
	alerts map[primitive.ObjectID]*models.EmergencyAlert
	order  []primitive.ObjectID
}

func newMemoryAlertRepo() *memoryAlertRepo {
	return &memoryAlertRepo{alerts: make(map[primitive.ObjectID]*models.EmergencyAlert)}
}

func (r *memoryAlertRepo) Create(_ context.Context, alert *models.EmergencyAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = time.Now()
	copied := *alert
	r.alerts[alert.ID] = &copied
	r.order = append(r.order, alert.ID)
	return nil
}

func (r *memoryAlertRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.EmergencyAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if alert, ok := r.alerts[id]; ok {
		copied := *alert
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryAlertRepo) UpdateStatusIf(_ context.Context, id primitive.ObjectID, from, to models.AlertStatus, ackBy *primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[id]
	if !ok || alert.Status != from {
		return false, nil
	}
	alert.Status = to
	if ackBy != nil {
		copied := *ackBy
		alert.AcknowledgedBy = &copied
	}
	alert.UpdatedAt = time.Now()
	return true, nil
}

func (r *memoryAlertRepo) ListByStatus(_ context.Context, status models.AlertStatus) ([]*models.EmergencyAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.EmergencyAlert
	for _, id := range r.order {
		if alert := r.alerts[id]; alert.Status == status {
			copied := *alert
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memoryAlertRepo) ListAll(_ context.Context) ([]*models.EmergencyAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.EmergencyAlert, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.alerts[id]
		result = append(result, &copied)
	}
	return result, nil
}

// memoryZoneRepo is an in-memory ZoneRepository.
type memoryZoneRepo struct {
	mu    sync.Mutex
	zones []*models.SafeZone
}

func newMemoryZoneRepo() *memoryZoneRepo {
	return &memoryZoneRepo{}
}

func (r *memoryZoneRepo) Create(_ context.Context, zone *models.SafeZone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	zone.ID = primitive.NewObjectID()
	zone.IsActive = true
	copied := *zone
	r.zones = append(r.zones, &copied)
	return nil
}

func (r *memoryZoneRepo) GetByName(_ context.Context, name string) (*models.SafeZone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, zone := range r.zones {
		if zone.Name == name {
			copied := *zone
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryZoneRepo) ListActive(_ context.Context) ([]*models.SafeZone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.SafeZone
	for _, zone := range r.zones {
		if zone.IsActive {
			copied := *zone
			result = append(result, &copied)
		}
	}
	return result, nil
}

// memoryLogRepo is an in-memory AccessLogRepository.
type memoryLogRepo struct {
	mu           sync.Mutex
	accessLogs   []*models.AccessLog
	failedLogins []*models.FailedLoginAttempt
}

func newMemoryLogRepo() *memoryLogRepo {
	return &memoryLogRepo{}
}

func (r *memoryLogRepo) CreateAccess(_ context.Context, log *models.AccessLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = primitive.NewObjectID()
	copied := *log
	r.accessLogs = append(r.accessLogs, &copied)
	return nil
}

func (r *memoryLogRepo) CreateFailedLogin(_ context.Context, attempt *models.FailedLoginAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt.ID = primitive.NewObjectID()
	copied := *attempt
	r.failedLogins = append(r.failedLogins, &copied)
	return nil
}

func (r *memoryLogRepo) ListAccess(_ context.Context) ([]*models.AccessLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.AccessLog(nil), r.accessLogs...), nil
}

func (r *memoryLogRepo) ListFailedLogins(_ context.Context) ([]*models.FailedLoginAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.FailedLoginAttempt(nil), r.failedLogins...), nil
}

var errCacheMiss = errors.New("cache miss")

// memoryCache is an in-memory CacheService. Expirations are ignored; tests
// that need expiry delete keys explicitly.
type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.values[key]
	if !ok {
		return errCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func (c *memoryCache) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int64
	if data, ok := c.values[key]; ok {
		if err := json.Unmarshal(data, &count); err != nil {
			return 0, err
		}
	}
	count++
	data, err := json.Marshal(count)
	if err != nil {
		return 0, err
	}
	c.values[key] = data
	return count, nil
}

// recordingSink captures violation signals instead of raising alerts.
type recordingSink struct {
	mu      sync.Mutex
	signals []ViolationSignal
	err     error
}

func (s *recordingSink) Emit(_ context.Context, signal ViolationSignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = append(s.signals, signal)
	return s.err
}

func (s *recordingSink) recorded() []ViolationSignal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ViolationSignal(nil), s.signals...)
}
