package galaxy

import (
	"time"

	"stellaris-server/internal/generation"

	"github.com/google/uuid"
)

type Status string

const (
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

type Galaxy struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RootSeed           string    `json:"root_seed"`
	GalaxyIndex        uint64    `json:"galaxy_index"`
	SiteCount          int       `json:"site_count"`
	Density            float64   `json:"density"`
	MinSeparation      float64   `json:"min_separation"`
	Height             float64   `json:"height"`
	HeightDistribution string    `json:"height_distribution"`
	BetaConcentration  float64   `json:"beta_concentration"`
	MassTransform      string    `json:"mass_transform"`
	MassScale          float64   `json:"mass_scale"`
	Radius             float64   `json:"radius"`
	Status             Status    `json:"status"`
	SystemCount        int       `json:"system_count"`
	Error              string    `json:"error,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateRequest is the body of a galaxy generation request.
type CreateRequest struct {
	Name                string `json:"name" yaml:"name"`
	generation.Settings `yaml:",inline"`
}

func newGalaxy(name string, req generation.Request, radius float64) *Galaxy {
	return &Galaxy{
		ID:                 uuid.New(),
		Name:               name,
		RootSeed:           req.Root.String(),
		GalaxyIndex:        req.GalaxyIndex,
		SiteCount:          req.SiteCount,
		Density:            req.Density,
		MinSeparation:      req.MinSeparation,
		Height:             req.Height,
		HeightDistribution: req.HeightDist.String(),
		BetaConcentration:  req.HeightDist.Concentration,
		MassTransform:      req.Mass.Transform.String(),
		MassScale:          req.Mass.Scale,
		Radius:             radius,
		Status:             StatusGenerating,
	}
}
