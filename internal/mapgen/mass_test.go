package mapgen

import (
	"math"
	"testing"

	"stellaris-server/internal/rng"
	"stellaris-server/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCellAreasPartitionBounds(t *testing.T) {
	for _, seed := range []uint64{1, 42, 1234} {
		p := NewGenParams(rng.NewStream(rng.U128(seed)), 300, 0.25)
		stream := p.Stream.Clone()
		sites := defaultSampler(p.SiteCount, p.Density).Sample(&stream)

		total := 0.0
		for _, a := range CellAreas(sites, p.Bounds()) {
			total += a
		}

		want := 4 * p.Radius() * p.Radius()
		if math.Abs(total-want) > 1e-6*want {
			t.Errorf("seed %d: cell areas sum to %v, want %v", seed, total, want)
		}
	}
}

func TestAssignMassesTransforms(t *testing.T) {
	sites := []mgl32.Vec3{{-1, 0, 0}, {1, 0, 0.5}}
	bounds := spatial.Square(2)

	tests := []struct {
		name string
		mass MassParams
		want float32
	}{
		{"area", MassParams{Transform: MassArea, Scale: 1}, 8},
		{"area density", MassParams{Transform: MassAreaDensity, Scale: 1}, 2},
		{"cube root", MassParams{Transform: MassCubeRoot, Scale: 1}, 2},
		{"scaled", MassParams{Transform: MassArea, Scale: 0.5}, 4},
		{"zero scale", MassParams{Transform: MassArea, Scale: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masses := AssignMasses(sites, bounds, 0.25, tt.mass)
			if len(masses) != len(sites) {
				t.Fatalf("got %d masses for %d sites", len(masses), len(sites))
			}
			for i, m := range masses {
				if math.Abs(float64(m-tt.want)) > 1e-5 {
					t.Errorf("mass %d = %v, want %v", i, m, tt.want)
				}
			}
		})
	}
}

func TestAssignMassesAlignedWithInput(t *testing.T) {
	// The bisector sits at x=-0.25, so the first site owns the larger cell.
	sites := []mgl32.Vec3{{1, 0, 0}, {-1.5, 0, 0}}
	masses := AssignMasses(sites, spatial.Square(2), 1, MassParams{Transform: MassArea, Scale: 1})

	if masses[0] <= masses[1] {
		t.Errorf("masses %v not aligned with input order", masses)
	}
}

func TestAssignMassesDegenerate(t *testing.T) {
	sites := []mgl32.Vec3{{0, 0, 0}, {0, 0, 1}}
	masses := AssignMasses(sites, spatial.Square(1), 1, DefaultMass())

	if masses[1] != 0 {
		t.Errorf("coincident site mass = %v, want 0", masses[1])
	}
	if masses[0] != 4 {
		t.Errorf("owner mass = %v, want 4", masses[0])
	}
}

func TestMassApplyClamps(t *testing.T) {
	m := MassParams{Transform: MassArea, Scale: 1}
	for _, area := range []float64{math.NaN(), math.Inf(1), -3} {
		if got := m.apply(area, 1); got != 0 {
			t.Errorf("apply(%v) = %v, want 0", area, got)
		}
	}
}

func TestAssignMassesEmpty(t *testing.T) {
	if masses := AssignMasses(nil, spatial.Square(1), 1, DefaultMass()); len(masses) != 0 {
		t.Errorf("expected no masses, got %v", masses)
	}
}
