// Package mapgen turns generation parameters into planetary system seeds:
// rejection-sampled positions in a galactic disk, masses from each site's
// Voronoi cell, and a private stream per system.
package mapgen

import (
	"log/slog"

	"stellaris-server/internal/rng"

	"github.com/go-gl/mathgl/mgl32"
)

// PlanetarySystemSeed is everything needed to instantiate one planetary system.
type PlanetarySystemSeed struct {
	Stream   rng.Stream `json:"stream"`
	Position mgl32.Vec3 `json:"position"`
	Mass     float32    `json:"mass"`
}

// Scale is the uniform scale of the system's transform.
func (s PlanetarySystemSeed) Scale(factor float32) float32 {
	return s.Mass * factor
}

// Generate runs the full pipeline. params must be valid; Generate does not
// fail, and returns at most params.SiteCount seeds.
func Generate(params GenParams) []PlanetarySystemSeed {
	stream := params.Stream.Clone()

	sampler := Sampler{
		Radius:        params.Radius(),
		Height:        params.Height,
		SiteCount:     params.SiteCount,
		MinSeparation: params.MinSeparation,
		HeightDist:    params.HeightDist,
	}
	positions := sampler.Sample(&stream)

	if len(positions) < params.SiteCount {
		slog.Debug("Sampling budget exhausted before site count reached",
			"component", "mapgen",
			"requested", params.SiteCount,
			"accepted", len(positions),
		)
	}

	masses := AssignMasses(positions, params.Bounds(), params.Density, params.Mass)

	seeds := make([]PlanetarySystemSeed, len(positions))
	for i, pos := range positions {
		seeds[i] = PlanetarySystemSeed{
			Stream:   rng.SystemStream(params.Stream, uint64(i)),
			Position: pos,
			Mass:     masses[i],
		}
	}
	return seeds
}
