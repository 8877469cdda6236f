package services

import (
	"context"
	"fmt"

	"safetour/internal/models"
	"safetour/internal/repositories/interfaces"
	"safetour/internal/utils"
	"safetour/pkg/logger"
)

// ZoneService exposes the safe-zone registry. Zones are administered out
// of band; the only write path is idempotent seeding at startup.
type ZoneService interface {
	ListActive(ctx context.Context) ([]*models.SafeZone, error)

	// Seed creates the given zones if no zone with the same name exists
	// yet and returns how many were created. A degenerate ring rejects
	// the whole batch before anything is written.
	Seed(ctx context.Context, zones []*models.SafeZone) (int, error)
}

type zoneService struct {
	zoneRepo interfaces.ZoneRepository
	cache    CacheService
	logger   *logger.Logger
}

func NewZoneService(zoneRepo interfaces.ZoneRepository, cache CacheService, logger *logger.Logger) ZoneService {
	return &zoneService{
		zoneRepo: zoneRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (s *zoneService) ListActive(ctx context.Context) ([]*models.SafeZone, error) {
	return s.zoneRepo.ListActive(ctx)
}

func (s *zoneService) Seed(ctx context.Context, zones []*models.SafeZone) (int, error) {
	for _, zone := range zones {
		if !utils.IsValidRing(utils.RingFromCoordinates(zone.Ring)) {
			return 0, fmt.Errorf("%w: %s", ErrInvalidZone, zone.Name)
		}
	}

	created := 0
	for _, zone := range zones {
		existing, err := s.zoneRepo.GetByName(ctx, zone.Name)
		if err != nil {
			return created, fmt.Errorf("failed to look up zone %q: %w", zone.Name, err)
		}
		if existing != nil {
			continue
		}

		if err := s.zoneRepo.Create(ctx, zone); err != nil {
			return created, fmt.Errorf("failed to create zone %q: %w", zone.Name, err)
		}
		created++
		s.logger.WithField("zone_name", zone.Name).Info("Safe zone seeded")
	}

	// Drop the snapshot so new zones take effect immediately.
	if created > 0 && s.cache != nil {
		if err := s.cache.Delete(ctx, zoneSnapshotKey); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate zone snapshot")
		}
	}

	return created, nil
}
