package system

import (
	"context"
	"log/slog"
	"time"

	"stellaris-server/internal/generation"
	"stellaris-server/internal/mapgen"
	"stellaris-server/internal/shared/errors"
	"stellaris-server/internal/shared/redis"

	"github.com/google/uuid"
)

type Service struct {
	repo     *Repository
	cache    redis.Cache
	cacheTTL time.Duration
	scale    float32
	logger   *slog.Logger
}

func NewService(repo *Repository, cache redis.Cache, cacheTTL time.Duration, scale float32, logger *slog.Logger) *Service {
	logger.Debug("Initializing planetary system service")

	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		scale:    scale,
		logger:   logger,
	}
}

func cacheKey(galaxyID uuid.UUID) string {
	return "galaxy:" + galaxyID.String() + ":systems"
}

// ForGalaxy returns an instantiator that stores generated systems under galaxyID.
func (s *Service) ForGalaxy(galaxyID uuid.UUID) generation.Instantiator {
	return generation.InstantiatorFunc(func(ctx context.Context, _ generation.GalaxyInfo, seeds []mapgen.PlanetarySystemSeed) error {
		return s.Instantiate(ctx, galaxyID, seeds)
	})
}

func (s *Service) Instantiate(ctx context.Context, galaxyID uuid.UUID, seeds []mapgen.PlanetarySystemSeed) error {
	systems := make([]PlanetarySystem, len(seeds))
	for i, seed := range seeds {
		systems[i] = FromSeed(galaxyID, i, seed, s.scale)
	}

	if err := s.repo.ReplaceForGalaxy(ctx, galaxyID, systems); err != nil {
		return errors.WrapInternal("failed to store planetary systems", err)
	}

	if err := s.cache.Delete(ctx, cacheKey(galaxyID)); err != nil {
		s.logger.Warn("Failed to invalidate system cache", "galaxy_id", galaxyID, "error", err)
	}
	return nil
}

// ListByGalaxy reads through the cache. Cache failures fall back to the database.
func (s *Service) ListByGalaxy(ctx context.Context, galaxyID uuid.UUID) ([]PlanetarySystem, error) {
	logger := s.logger.With("component", "system_service", "operation", "list_by_galaxy", "galaxy_id", galaxyID)
	key := cacheKey(galaxyID)

	var systems []PlanetarySystem
	found, err := s.cache.Get(ctx, key, &systems)
	if err != nil {
		logger.Warn("System cache read failed", "error", err)
	}
	if found {
		logger.Debug("System cache hit", "count", len(systems))
		return systems, nil
	}

	systems, err = s.repo.ListByGalaxy(ctx, galaxyID)
	if err != nil {
		return nil, errors.WrapInternal("failed to list planetary systems", err)
	}
	if systems == nil {
		systems = []PlanetarySystem{}
	}

	if err := s.cache.Set(ctx, key, systems, s.cacheTTL); err != nil {
		logger.Warn("System cache write failed", "error", err)
	}
	return systems, nil
}
