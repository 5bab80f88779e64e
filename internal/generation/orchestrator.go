// Package generation runs galaxy generation requests on a worker pool and
// delivers each result to the host exactly once.
package generation

import (
	"log/slog"
	"math"

	"stellaris-server/internal/mapgen"
	"stellaris-server/internal/rng"
	"stellaris-server/internal/shared/errors"
	"stellaris-server/internal/worker"

	"github.com/google/uuid"
)

// Request is a host's galaxy generation request.
type Request struct {
	Root          rng.RootSeed
	GalaxyIndex   uint64
	SiteCount     int
	Density       float64
	MinSeparation float64
	Height        float64
	HeightDist    mapgen.HeightDistribution
	Mass          mapgen.MassParams
}

// NewRequest fills every optional field with its default.
func NewRequest(root rng.RootSeed, galaxyIndex uint64, siteCount int, density float64) Request {
	p := mapgen.NewGenParams(rng.Stream{}, siteCount, density)
	return Request{
		Root:          root,
		GalaxyIndex:   galaxyIndex,
		SiteCount:     siteCount,
		Density:       density,
		MinSeparation: p.MinSeparation,
		Height:        p.Height,
		HeightDist:    p.HeightDist,
		Mass:          p.Mass,
	}
}

// Params derives the galaxy stream and builds the generation parameters.
func (r Request) Params() mapgen.GenParams {
	return mapgen.GenParams{
		Stream:        rng.GalaxyStream(r.Root.NewStream(), r.GalaxyIndex),
		SiteCount:     r.SiteCount,
		Density:       r.Density,
		MinSeparation: r.MinSeparation,
		Height:        r.Height,
		HeightDist:    r.HeightDist,
		Mass:          r.Mass,
	}
}

func (r Request) validate(params mapgen.GenParams) error {
	if r.GalaxyIndex == math.MaxUint64 {
		return errors.Validationf("galaxy_index %d collides with the empire stream", r.GalaxyIndex)
	}
	if err := params.Validate(); err != nil {
		return err
	}
	// System j lives in L32 slot j+1 of the galaxy; slots past the capacity
	// would run into the next galaxy.
	if uint64(r.SiteCount) >= rng.Level32.Capacity() {
		return errors.Validationf("site_count must be below %d, got %d", rng.Level32.Capacity(), r.SiteCount)
	}
	return nil
}

type Orchestrator struct {
	pool   *worker.Pool
	logger *slog.Logger
}

func NewOrchestrator(pool *worker.Pool) *Orchestrator {
	return &Orchestrator{
		pool:   pool,
		logger: slog.With("component", "generation"),
	}
}

// Submit validates req and dispatches its computation. A rejected request
// returns a job that is already Ready with an empty result, together with the
// validation error; nothing is dispatched for it.
func (o *Orchestrator) Submit(req Request) (*Job, error) {
	params := req.Params()

	job := &Job{
		ID:    uuid.New(),
		state: StateIdle,
		info: GalaxyInfo{
			Root:   req.Root,
			Index:  req.GalaxyIndex,
			Stream: params.Stream,
		},
	}
	job.logger = o.logger.With(
		"job_id", job.ID,
		"root_seed", req.Root.String(),
		"galaxy_index", req.GalaxyIndex,
	)

	if err := req.validate(params); err != nil {
		job.err = err
		job.state = StateReady
		job.logger.Debug("Generation request rejected", "error", err)
		return job, err
	}

	job.info.Radius = params.Radius()
	job.info.Height = params.Height
	job.info.BoundingSize = params.BoundingSize()
	job.task = worker.Spawn(o.pool, func() []mapgen.PlanetarySystemSeed {
		return mapgen.Generate(params)
	})
	job.state = StateRunning

	job.logger.Info("Generation dispatched",
		"site_count", params.SiteCount,
		"density", params.Density,
		"radius", job.info.Radius,
		"height_distribution", params.HeightDist.String(),
		"mass_transform", params.Mass.Transform.String(),
	)
	return job, nil
}
