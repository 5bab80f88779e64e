package galaxy

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"stellaris-server/internal/generation"
	"stellaris-server/internal/shared/config"
	"stellaris-server/internal/shared/errors"
	"stellaris-server/internal/system"

	"github.com/google/uuid"
)

const maxNameLength = 100

// Service persists galaxies and hosts their generation jobs. Run polls the
// registered jobs once per interval and stores finished galaxies.
type Service struct {
	repo         *Repository
	systems      *system.Service
	orchestrator *generation.Orchestrator
	defaults     config.GalaxyConfig
	pollInterval time.Duration

	mu   sync.Mutex
	jobs map[uuid.UUID]*generation.Job

	logger *slog.Logger
}

func NewService(
	repo *Repository,
	systems *system.Service,
	orchestrator *generation.Orchestrator,
	defaults config.GalaxyConfig,
	pollInterval time.Duration,
	logger *slog.Logger,
) *Service {
	logger.Debug("Initializing galaxy service")

	return &Service{
		repo:         repo,
		systems:      systems,
		orchestrator: orchestrator,
		defaults:     defaults,
		pollInterval: pollInterval,
		jobs:         make(map[uuid.UUID]*generation.Job),
		logger:       logger,
	}
}

// Defaults is a CreateRequest filled from configuration, for request bodies
// to be decoded onto.
func (s *Service) Defaults() CreateRequest {
	return CreateRequest{Settings: generation.DefaultSettings(s.defaults)}
}

// RequestGeneration submits the generation of a new galaxy and records it as
// generating. Invalid parameters are rejected before anything is stored.
func (s *Service) RequestGeneration(ctx context.Context, req CreateRequest) (*Galaxy, error) {
	logger := s.logger.With("component", "galaxy_service", "operation", "request_generation")

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}
	if len(name) > maxNameLength {
		return nil, errors.Validationf("name must be at most %d characters", maxNameLength)
	}

	genReq, err := req.Settings.Request()
	if err != nil {
		return nil, err
	}

	job, err := s.orchestrator.Submit(genReq)
	if err != nil {
		logger.Debug("Generation request rejected", "error", err)
		return nil, err
	}

	g := newGalaxy(name, genReq, job.Info().Radius)
	if err := s.repo.Create(ctx, g); err != nil {
		// the job finishes on the pool and is dropped
		return nil, err
	}

	s.mu.Lock()
	s.jobs[g.ID] = job
	s.mu.Unlock()

	logger.Info("Galaxy generation requested",
		"galaxy_id", g.ID,
		"job_id", job.ID,
		"root_seed", g.RootSeed,
		"galaxy_index", g.GalaxyIndex,
		"site_count", g.SiteCount,
	)
	return g, nil
}

// Pending is the number of jobs not yet stored.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// RecoverInterrupted fails galaxies left generating by a previous process.
func (s *Service) RecoverInterrupted(ctx context.Context) error {
	n, err := s.repo.FailInterrupted(ctx)
	if err != nil {
		return errors.WrapInternal("failed to recover interrupted galaxies", err)
	}
	if n > 0 {
		s.logger.Warn("Marked interrupted galaxies as failed", "count", n)
	}
	return nil
}

// Run polls registered jobs every poll interval until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	logger := s.logger.With("component", "galaxy_service", "operation", "run")
	logger.Info("Generation host started", "poll_interval", s.pollInterval)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Generation host stopped", "pending", s.Pending())
			return ctx.Err()
		case <-ticker.C:
			s.Poll(ctx)
		}
	}
}

// Poll checks every registered job once without blocking and stores the
// galaxies whose generation finished. It returns how many were handled.
func (s *Service) Poll(ctx context.Context) int {
	ready := make(map[uuid.UUID]*generation.Job)

	s.mu.Lock()
	for id, job := range s.jobs {
		if job.Poll() {
			ready[id] = job
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	for id, job := range ready {
		s.complete(ctx, id, job)
	}
	return len(ready)
}

func (s *Service) complete(ctx context.Context, id uuid.UUID, job *generation.Job) {
	logger := s.logger.With("component", "galaxy_service", "operation", "complete", "galaxy_id", id, "job_id", job.ID)

	n, err := job.Consume(ctx, s.systems.ForGalaxy(id))
	if err != nil {
		logger.Error("Failed to store generated galaxy", "error", err)
		if markErr := s.repo.MarkFailed(ctx, id, err.Error()); markErr != nil {
			logger.Error("Failed to mark galaxy as failed", "error", markErr)
		}
		return
	}

	if err := s.repo.MarkReady(ctx, id, n); err != nil {
		logger.Error("Failed to mark galaxy as ready", "error", err)
		return
	}

	logger.Info("Galaxy ready", "systems", n)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Galaxy, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapInternal("failed to get galaxy", err)
	}
	if g == nil {
		return nil, errors.NotFoundf("galaxy %s not found", id)
	}
	return g, nil
}

func (s *Service) List(ctx context.Context) ([]Galaxy, error) {
	galaxies, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.WrapInternal("failed to list galaxies", err)
	}
	if galaxies == nil {
		galaxies = []Galaxy{}
	}
	return galaxies, nil
}

// Systems lists the planetary systems of an existing galaxy.
func (s *Service) Systems(ctx context.Context, id uuid.UUID) ([]system.PlanetarySystem, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.systems.ListByGalaxy(ctx, id)
}
