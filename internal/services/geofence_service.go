package services

import (
	"context"
	"fmt"

	"safetour/internal/models"
	"safetour/internal/repositories/interfaces"
	"safetour/internal/utils"
	"safetour/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ViolationSignal is emitted once per zone a tourist's point falls
// outside of. It is the only path that raises alerts on behalf of a
// tourist who did not explicitly call SOS.
type ViolationSignal struct {
	TouristID primitive.ObjectID `json:"tourist_id"`
	Point     models.GeoPoint    `json:"point"`
	ZoneName  string             `json:"zone_name"`
}

// EventSink consumes violation signals. The production sink raises an
// alert; tests substitute a recording sink.
type EventSink interface {
	Emit(ctx context.Context, signal ViolationSignal) error
}

type GeofenceService interface {
	// Evaluate tests the point against every active zone and returns one
	// signal per zone the point lies outside of. Signals are also pushed
	// through the sink before returning. Which zones apply to which
	// tourist is the caller's policy; the engine checks all of them.
	Evaluate(ctx context.Context, touristID primitive.ObjectID, lat, lng float64) ([]ViolationSignal, error)
}

type geofenceService struct {
	zoneRepo interfaces.ZoneRepository
	cache    CacheService
	sink     EventSink
	logger   *logger.Logger
}

func NewGeofenceService(
	zoneRepo interfaces.ZoneRepository,
	cache CacheService,
	sink EventSink,
	logger *logger.Logger,
) GeofenceService {
	return &geofenceService{
		zoneRepo: zoneRepo,
		cache:    cache,
		sink:     sink,
		logger:   logger,
	}
}

const zoneSnapshotKey = "geofence:zones"

func (s *geofenceService) Evaluate(ctx context.Context, touristID primitive.ObjectID, lat, lng float64) ([]ViolationSignal, error) {
	if !utils.IsValidCoordinates(lat, lng) {
		return nil, ErrInvalidPoint
	}

	zones, err := s.loadZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load safe zones: %w", err)
	}

	point := utils.Point{Lat: lat, Lng: lng}
	var signals []ViolationSignal

	for _, zone := range zones {
		ring := utils.RingFromCoordinates(zone.Ring)
		if !utils.IsValidRing(ring) {
			// Fail closed: a degenerate ring cannot confirm containment,
			// so no signal is emitted for it and the evaluation is
			// rejected rather than guessed at.
			s.logger.WithField("zone_name", zone.Name).Error("Safe zone ring is degenerate, skipping evaluation")
			return nil, ErrInvalidZone
		}

		if !utils.IsPointInRing(point, ring) {
			signals = append(signals, ViolationSignal{
				TouristID: touristID,
				Point:     models.NewGeoPoint(lat, lng),
				ZoneName:  zone.Name,
			})
		}
	}

	for _, signal := range signals {
		s.logger.LogViolation(signal.TouristID, signal.ZoneName, lat, lng)
		if err := s.sink.Emit(ctx, signal); err != nil {
			s.logger.WithError(err).WithTouristID(touristID).Error("Failed to emit violation signal")
		}
	}

	return signals, nil
}

// loadZones serves evaluation from a short-lived cached snapshot. Zones
// are read-mostly; a stale snapshot is acceptable for containment tests.
func (s *geofenceService) loadZones(ctx context.Context) ([]*models.SafeZone, error) {
	if s.cache != nil {
		var cached []*models.SafeZone
		if err := s.cache.Get(ctx, zoneSnapshotKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	zones, err := s.zoneRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(zones) > 0 {
		if err := s.cache.Set(ctx, zoneSnapshotKey, zones, utils.ZoneSnapshotTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache zone snapshot")
		}
	}

	return zones, nil
}
