package generation

import (
	"context"
	"log/slog"
	"sync"

	"stellaris-server/internal/mapgen"
	"stellaris-server/internal/rng"
	"stellaris-server/internal/shared/errors"
	"stellaris-server/internal/worker"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var (
	ErrAlreadyConsumed = errors.Conflict("generation result already consumed")
	ErrNotReady        = errors.Conflict("generation still running")
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateReady
	StateConsumed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateReady:
		return "ready"
	case StateConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// GalaxyInfo describes the galaxy a job generates, for the instantiator.
type GalaxyInfo struct {
	Root         rng.RootSeed
	Index        uint64
	Stream       rng.Stream
	Radius       float64
	Height       float64
	BoundingSize mgl32.Vec3
}

// Instantiator turns seeds into durable planetary system entities. Each seed
// gets a fresh stable id, a transform at its position scaled by its mass and
// an empty planet list.
type Instantiator interface {
	InstantiateSystems(ctx context.Context, galaxy GalaxyInfo, seeds []mapgen.PlanetarySystemSeed) error
}

// InstantiatorFunc adapts a function to Instantiator.
type InstantiatorFunc func(ctx context.Context, galaxy GalaxyInfo, seeds []mapgen.PlanetarySystemSeed) error

func (f InstantiatorFunc) InstantiateSystems(ctx context.Context, galaxy GalaxyInfo, seeds []mapgen.PlanetarySystemSeed) error {
	return f(ctx, galaxy, seeds)
}

// Job tracks one galaxy generation through Idle, Running, Ready and Consumed.
type Job struct {
	ID uuid.UUID

	mu     sync.Mutex
	state  State
	info   GalaxyInfo
	task   *worker.Task[[]mapgen.PlanetarySystemSeed]
	result []mapgen.PlanetarySystemSeed
	err    error
	logger *slog.Logger
}

func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

func (j *Job) Info() GalaxyInfo {
	return j.info
}

// Bounds is the half-extent of the generated galaxy.
func (j *Job) Bounds() mgl32.Vec3 {
	return j.info.BoundingSize
}

// Err is the validation error of a rejected request, nil otherwise.
func (j *Job) Err() error {
	return j.err
}

// Poll moves a running job to Ready once its computation has finished. It
// never blocks and reports whether the job is Ready.
func (j *Job) Poll() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pollLocked()
}

func (j *Job) pollLocked() bool {
	switch j.state {
	case StateRunning:
		seeds, ok := j.task.Poll()
		if !ok {
			return false
		}
		j.result = seeds
		j.state = StateReady
		j.logger.Debug("Generation ready", "systems", len(seeds))
		return true
	case StateReady:
		return true
	default:
		return false
	}
}

// Consume hands the result to inst exactly once and tears the job down. The
// job is Consumed even when inst fails; the error is returned to the caller.
func (j *Job) Consume(ctx context.Context, inst Instantiator) (int, error) {
	j.mu.Lock()
	if j.state == StateConsumed {
		j.mu.Unlock()
		return 0, ErrAlreadyConsumed
	}
	if !j.pollLocked() {
		j.mu.Unlock()
		return 0, ErrNotReady
	}

	seeds := j.result
	j.result = nil
	j.task = nil
	j.state = StateConsumed
	j.mu.Unlock()

	if err := inst.InstantiateSystems(ctx, j.info, seeds); err != nil {
		j.logger.Error("Failed to instantiate planetary systems", "error", err, "systems", len(seeds))
		return len(seeds), err
	}

	j.logger.Info("Generation consumed", "systems", len(seeds))
	return len(seeds), nil
}
