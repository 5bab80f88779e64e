package generation

import (
	"stellaris-server/internal/mapgen"
	"stellaris-server/internal/rng"
	"stellaris-server/internal/shared/config"
	"stellaris-server/internal/shared/errors"
)

// Settings is the external form of a Request, as read from request bodies,
// parameter files and configuration. An empty RootSeed draws a random one.
type Settings struct {
	RootSeed           string  `json:"root_seed" yaml:"root_seed"`
	GalaxyIndex        uint64  `json:"galaxy_index" yaml:"galaxy_index"`
	SiteCount          int     `json:"site_count" yaml:"site_count"`
	Density            float64 `json:"density" yaml:"density"`
	MinSeparation      float64 `json:"min_separation" yaml:"min_separation"`
	Height             float64 `json:"height" yaml:"height"`
	HeightDistribution string  `json:"height_distribution" yaml:"height_distribution"`
	BetaConcentration  float64 `json:"beta_concentration" yaml:"beta_concentration"`
	MassTransform      string  `json:"mass_transform" yaml:"mass_transform"`
	MassScale          float64 `json:"mass_scale" yaml:"mass_scale"`
}

func DefaultSettings(cfg config.GalaxyConfig) Settings {
	return Settings{
		RootSeed:           cfg.RootSeed,
		SiteCount:          cfg.SiteCount,
		Density:            cfg.Density,
		MinSeparation:      cfg.MinSeparation,
		Height:             cfg.Height,
		HeightDistribution: cfg.HeightDistribution,
		BetaConcentration:  mapgen.BetaConcentration(cfg.BetaSigma),
		MassTransform:      cfg.MassTransform,
		MassScale:          cfg.MassScale,
	}
}

// Request parses s. Only malformed names and seeds fail here; numeric
// ranges are checked when the request is submitted.
func (s Settings) Request() (Request, error) {
	root := rng.RandomRootSeed()
	if s.RootSeed != "" {
		parsed, err := rng.ParseRootSeed(s.RootSeed)
		if err != nil {
			return Request{}, errors.WrapValidation("invalid root_seed", err)
		}
		root = parsed
	}

	heightDist, err := mapgen.ParseHeightDistribution(s.HeightDistribution, s.BetaConcentration)
	if err != nil {
		return Request{}, err
	}

	transform, err := mapgen.ParseMassTransform(s.MassTransform)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Root:          root,
		GalaxyIndex:   s.GalaxyIndex,
		SiteCount:     s.SiteCount,
		Density:       s.Density,
		MinSeparation: s.MinSeparation,
		Height:        s.Height,
		HeightDist:    heightDist,
		Mass:          mapgen.MassParams{Transform: transform, Scale: s.MassScale},
	}, nil
}
