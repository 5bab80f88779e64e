// Package world is the in-process entity store: an ECS world holding the
// galaxy and its planetary systems.
package world

import (
	"context"
	"log/slog"

	"stellaris-server/internal/generation"
	"stellaris-server/internal/mapgen"
	"stellaris-server/internal/rng"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
)

const DefaultSystemScale = 0.4

// World is not safe for concurrent use; the session drives it from its tick.
type World struct {
	ecs          *ecs.World
	systemMap    *ecs.Map5[ObjectID, Transform, Planets, PlanetarySystem, Coordinate]
	galaxyMap    *ecs.Map3[ObjectID, Galaxy, BoundingSize]
	systemFilter *ecs.Filter4[ObjectID, Transform, Planets, PlanetarySystem]
	galaxyFilter *ecs.Filter3[ObjectID, Galaxy, BoundingSize]
	objects      map[ObjectID]ecs.Entity
	systemScale  float32
	logger       *slog.Logger
}

func New(systemScale float32) *World {
	ew := ecs.NewWorld()
	w := &ew
	return &World{
		ecs:          w,
		systemMap:    ecs.NewMap5[ObjectID, Transform, Planets, PlanetarySystem, Coordinate](w),
		galaxyMap:    ecs.NewMap3[ObjectID, Galaxy, BoundingSize](w),
		systemFilter: ecs.NewFilter4[ObjectID, Transform, Planets, PlanetarySystem](w),
		galaxyFilter: ecs.NewFilter3[ObjectID, Galaxy, BoundingSize](w),
		objects:      make(map[ObjectID]ecs.Entity),
		systemScale:  systemScale,
		logger:       slog.With("component", "world"),
	}
}

// InstantiateSystems spawns a galaxy entity and one planetary system entity per seed.
func (w *World) InstantiateSystems(ctx context.Context, galaxy generation.GalaxyInfo, seeds []mapgen.PlanetarySystemSeed) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	galaxyID := NewObjectID()
	galaxyEntity := w.galaxyMap.NewEntity(
		&galaxyID,
		&Galaxy{
			Root:    galaxy.Root,
			Index:   galaxy.Index,
			Stream:  galaxy.Stream,
			Radius:  galaxy.Radius,
			Systems: len(seeds),
		},
		&BoundingSize{Extent: galaxy.BoundingSize},
	)
	w.objects[galaxyID] = galaxyEntity

	for i, seed := range seeds {
		id := NewObjectID()
		transform := NewTransform(seed.Position, seed.Scale(w.systemScale))
		entity := w.systemMap.NewEntity(
			&id,
			&transform,
			&Planets{},
			&PlanetarySystem{Galaxy: galaxyEntity, Index: i, Mass: seed.Mass, Stream: seed.Stream},
			&Coordinate{},
		)
		w.objects[id] = entity
	}

	w.logger.Info("Galaxy instantiated",
		"galaxy_id", galaxyID,
		"galaxy_index", galaxy.Index,
		"systems", len(seeds),
	)
	return nil
}

// Lookup resolves a stable id to its live entity.
func (w *World) Lookup(id ObjectID) (ObjectRef, bool) {
	entity, ok := w.objects[id]
	if !ok || !w.ecs.Alive(entity) {
		return ObjectRef{}, false
	}
	return ObjectRef{ID: id, Entity: entity}, true
}

// SystemView is a read-only snapshot of a planetary system entity.
type SystemView struct {
	ID       uuid.UUID  `json:"id"`
	Index    int        `json:"index"`
	Position mgl32.Vec3 `json:"position"`
	Scale    float32    `json:"scale"`
	Mass     float32    `json:"mass"`
	Planets  int        `json:"planet_count"`
	Stream   rng.Stream `json:"stream"`
}

func (w *World) Systems() []SystemView {
	var out []SystemView

	query := w.systemFilter.Query()
	for query.Next() {
		id, transform, planets, system := query.Get()
		out = append(out, SystemView{
			ID:       id.UUID,
			Index:    system.Index,
			Position: transform.Translation,
			Scale:    transform.Scale[0],
			Mass:     system.Mass,
			Planets:  len(planets.Refs),
			Stream:   system.Stream,
		})
	}
	return out
}

type GalaxyView struct {
	ID           uuid.UUID    `json:"id"`
	Root         rng.RootSeed `json:"root_seed"`
	Index        uint64       `json:"galaxy_index"`
	Radius       float64      `json:"radius"`
	BoundingSize mgl32.Vec3   `json:"bounding_size"`
	Systems      int          `json:"system_count"`
}

func (w *World) Galaxies() []GalaxyView {
	var out []GalaxyView

	query := w.galaxyFilter.Query()
	for query.Next() {
		id, galaxy, size := query.Get()
		out = append(out, GalaxyView{
			ID:           id.UUID,
			Root:         galaxy.Root,
			Index:        galaxy.Index,
			Radius:       galaxy.Radius,
			BoundingSize: size.Extent,
			Systems:      galaxy.Systems,
		})
	}
	return out
}
