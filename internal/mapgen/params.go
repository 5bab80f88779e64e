package mapgen

import (
	"fmt"
	"math"
	"strings"

	"stellaris-server/internal/rng"
	"stellaris-server/internal/shared/errors"
	"stellaris-server/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultMinSeparation = 1.0
	DefaultHeight        = 1.0
	DefaultBetaSigma     = 0.05

	// Below this gonum's Beta sampler underflows and returns NaN.
	MinBetaConcentration = 0.01
)

type HeightKind uint8

const (
	HeightUniform HeightKind = iota
	HeightSymmetricBeta
)

// HeightDistribution chooses how z is drawn within [-height, height].
// SymmetricBeta uses Beta(c, c) rescaled to the band, which biases sites
// toward the mid-plane as c grows.
type HeightDistribution struct {
	Kind          HeightKind
	Concentration float64
}

func UniformHeight() HeightDistribution {
	return HeightDistribution{Kind: HeightUniform}
}

func SymmetricBeta(concentration float64) HeightDistribution {
	return HeightDistribution{Kind: HeightSymmetricBeta, Concentration: concentration}
}

func (d HeightDistribution) String() string {
	if d.Kind == HeightSymmetricBeta {
		return "beta"
	}
	return "uniform"
}

// ParseHeightDistribution maps a configuration name to a distribution.
// concentration is ignored for "uniform".
func ParseHeightDistribution(name string, concentration float64) (HeightDistribution, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uniform":
		return UniformHeight(), nil
	case "beta", "symmetric_beta":
		return SymmetricBeta(concentration), nil
	default:
		return HeightDistribution{}, errors.Validationf("unknown height distribution %q", name)
	}
}

// BetaParams matches a Beta distribution to mean mu and standard deviation sigma.
func BetaParams(mu, sigma float64) (alpha, beta float64) {
	n := mu * (1 - mu) / (sigma * sigma)
	return mu * n, (1 - mu) * n
}

// BetaConcentration is the symmetric Beta parameter with standard deviation sigma.
func BetaConcentration(sigma float64) float64 {
	alpha, _ := BetaParams(0.5, sigma)
	return alpha
}

// MassTransform maps a cell area to a mass before scaling.
type MassTransform uint8

const (
	MassAreaDensity MassTransform = iota
	MassArea
	MassCubeRoot
)

var massTransformNames = map[MassTransform]string{
	MassAreaDensity: "area_density",
	MassArea:        "area",
	MassCubeRoot:    "cube_root",
}

func (t MassTransform) String() string {
	if name, ok := massTransformNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MassTransform(%d)", t)
}

func ParseMassTransform(name string) (MassTransform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range massTransformNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.Validationf("unknown mass transform %q", name)
}

func (t MassTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *MassTransform) UnmarshalText(text []byte) error {
	parsed, err := ParseMassTransform(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type MassParams struct {
	Transform MassTransform
	Scale     float64
}

func DefaultMass() MassParams {
	return MassParams{Transform: MassAreaDensity, Scale: 1}
}

// GenParams is a single galaxy generation request. Stream is the galaxy's own
// stream; the sampler draws from it and system j receives rng.SystemStream(Stream, j).
type GenParams struct {
	Stream        rng.Stream
	SiteCount     int
	Density       float64
	MinSeparation float64
	Height        float64
	HeightDist    HeightDistribution
	Mass          MassParams
}

// NewGenParams fills every optional field with its default.
func NewGenParams(stream rng.Stream, siteCount int, density float64) GenParams {
	return GenParams{
		Stream:        stream,
		SiteCount:     siteCount,
		Density:       density,
		MinSeparation: DefaultMinSeparation,
		Height:        DefaultHeight,
		HeightDist:    SymmetricBeta(BetaConcentration(DefaultBetaSigma)),
		Mass:          DefaultMass(),
	}
}

func (p GenParams) Radius() float64 {
	return 0.5 * math.Sqrt(float64(p.SiteCount)/p.Density)
}

// Bounds is the square the mass partition covers.
func (p GenParams) Bounds() spatial.Polygon {
	return spatial.Square(p.Radius())
}

// BoundingSize is the half-extent of the galaxy on each axis.
func (p GenParams) BoundingSize() mgl32.Vec3 {
	r := float32(p.Radius())
	return mgl32.Vec3{r, r, float32(p.Height)}
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (p GenParams) Validate() error {
	if p.SiteCount <= 0 {
		return errors.Validationf("site_count must be positive, got %d", p.SiteCount)
	}
	if !finitePositive(p.Density) {
		return errors.Validationf("density must be a positive number, got %v", p.Density)
	}
	if !finitePositive(p.MinSeparation) {
		return errors.Validationf("min_separation must be a positive number, got %v", p.MinSeparation)
	}
	if p.Height < 0 || math.IsInf(p.Height, 0) || math.IsNaN(p.Height) {
		return errors.Validationf("height must be a non-negative number, got %v", p.Height)
	}
	if p.HeightDist.Kind == HeightSymmetricBeta {
		c := p.HeightDist.Concentration
		if !finitePositive(c) || c < MinBetaConcentration {
			return errors.Validationf("beta concentration must be at least %v, got %v", MinBetaConcentration, c)
		}
	}
	if _, ok := massTransformNames[p.Mass.Transform]; !ok {
		return errors.Validationf("unknown mass transform %d", p.Mass.Transform)
	}
	if p.Mass.Scale < 0 || math.IsInf(p.Mass.Scale, 0) || math.IsNaN(p.Mass.Scale) {
		return errors.Validationf("mass_scale must be a non-negative number, got %v", p.Mass.Scale)
	}
	if !finitePositive(p.Radius()) {
		return errors.Validationf("site_count/density gives an unusable radius %v", p.Radius())
	}
	return nil
}
