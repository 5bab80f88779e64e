package system

import (
	"time"

	"stellaris-server/internal/mapgen"

	"github.com/google/uuid"
)

type PlanetarySystem struct {
	ID          uuid.UUID `json:"id"`
	GalaxyID    uuid.UUID `json:"galaxy_id"`
	Index       int       `json:"index"`
	X           float32   `json:"x"`
	Y           float32   `json:"y"`
	Z           float32   `json:"z"`
	Mass        float32   `json:"mass"`
	Scale       float32   `json:"scale"`
	StreamState string    `json:"stream_state"`
	PlanetCount int       `json:"planet_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromSeed builds the record of the index-th system of a galaxy. The record
// gets a fresh id and no planets.
func FromSeed(galaxyID uuid.UUID, index int, seed mapgen.PlanetarySystemSeed, scaleFactor float32) PlanetarySystem {
	return PlanetarySystem{
		ID:          uuid.New(),
		GalaxyID:    galaxyID,
		Index:       index,
		X:           seed.Position.X(),
		Y:           seed.Position.Y(),
		Z:           seed.Position.Z(),
		Mass:        seed.Mass,
		Scale:       seed.Scale(scaleFactor),
		StreamState: seed.Stream.String(),
	}
}
