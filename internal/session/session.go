// Package session drives a headless game session: setup, menu, loading a
// generated galaxy and playing it, advanced one tick at a time.
package session

import (
	"context"
	"log/slog"
	"math"
	"time"

	"stellaris-server/internal/generation"
	"stellaris-server/internal/shared/errors"
	"stellaris-server/internal/world"
)

type Session struct {
	state  AppState
	source LoadSource
	orch   *generation.Orchestrator
	world  *world.World
	job    *generation.Job
	bounds MotionBounds
	ticks  int
	logger *slog.Logger
}

func New(orch *generation.Orchestrator, w *world.World) *Session {
	return &Session{
		state:  StateSetup,
		orch:   orch,
		world:  w,
		logger: slog.With("component", "session"),
	}
}

func (s *Session) State() AppState {
	return s.state
}

func (s *Session) World() *world.World {
	return s.world
}

func (s *Session) Bounds() MotionBounds {
	return s.bounds
}

func (s *Session) Ticks() int {
	return s.ticks
}

func (s *Session) transition(to AppState) {
	s.logger.Debug("State transition", "from", s.state, "to", to)
	s.state = to
}

// CompleteSetup enters the menu once setup is done.
func (s *Session) CompleteSetup() error {
	if s.state != StateSetup {
		return errors.Conflictf("cannot complete setup from %s", s.state)
	}
	s.transition(StateInMenu)
	return nil
}

// NewGame submits a generation request and enters loading. A rejected
// request leaves the session in the menu.
func (s *Session) NewGame(req generation.Request) error {
	if s.state != StateInMenu {
		return errors.Conflictf("cannot start a new game from %s", s.state)
	}

	job, err := s.orch.Submit(req)
	if err != nil {
		return err
	}

	s.job = job
	s.source = LoadGeneration
	s.transition(StateLoading)
	return nil
}

// Tick advances the session by one frame. While loading it polls the
// generation job without blocking and, once ready, instantiates the galaxy
// into the world and enters the game.
func (s *Session) Tick(ctx context.Context) (AppState, error) {
	s.ticks++

	if s.state != StateLoading || !s.job.Poll() {
		return s.state, nil
	}

	job := s.job
	s.job = nil
	n, err := job.Consume(ctx, s.world)
	if err != nil {
		s.transition(StateInMenu)
		return s.state, err
	}

	s.bounds = MotionBounds{
		MinHeight: 32,
		MaxHeight: 100,
		MaxTheta:  math.Pi / 3,
		MaxRadius: float32(job.Info().Radius),
	}
	s.logger.Info("Galaxy loaded", "systems", n, "ticks", s.ticks, "source", s.source)
	s.transition(StateInGame)
	return s.state, nil
}

// ExitToMenu abandons the current game. A generation still running is left
// to finish on the pool and its result is dropped.
func (s *Session) ExitToMenu() {
	if s.job != nil {
		s.logger.Debug("Abandoning generation job", "job_id", s.job.ID, "job_state", s.job.State())
	}
	s.job = nil
	s.bounds = MotionBounds{}
	s.transition(StateInMenu)
}

// Run ticks every interval until the session leaves the loading state or ctx ends.
func (s *Session) Run(ctx context.Context, interval time.Duration) (AppState, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for s.state == StateLoading {
		select {
		case <-ctx.Done():
			return s.state, ctx.Err()
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil {
				return s.state, err
			}
		}
	}
	return s.state, nil
}
