package mapgen

import (
	"math"
	"sort"
	"testing"

	"stellaris-server/internal/rng"

	"github.com/go-gl/mathgl/mgl32"
)

func sample(seed uint64, s Sampler) []mgl32.Vec3 {
	stream := rng.NewStream(rng.U128(seed))
	return s.Sample(&stream)
}

func defaultSampler(count int, density float64) Sampler {
	p := NewGenParams(rng.Stream{}, count, density)
	return Sampler{
		Radius:        p.Radius(),
		Height:        p.Height,
		SiteCount:     count,
		MinSeparation: p.MinSeparation,
		HeightDist:    p.HeightDist,
	}
}

func TestSampleSeparation(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42} {
		s := defaultSampler(400, 0.25)
		sites := sample(seed, s)

		for i := range sites {
			for j := i + 1; j < len(sites); j++ {
				d := math.Sqrt(planarDist2(sites[i], sites[j]))
				if d < s.MinSeparation-1e-6 {
					t.Fatalf("seed %d: sites %d and %d are %v apart", seed, i, j, d)
				}
			}
		}
	}
}

func TestSampleBounded(t *testing.T) {
	for _, dist := range []HeightDistribution{UniformHeight(), SymmetricBeta(50), SymmetricBeta(0.5)} {
		s := defaultSampler(300, 0.1)
		s.Height = 2.5
		s.HeightDist = dist
		sites := sample(7, s)

		for i, p := range sites {
			r := math.Hypot(float64(p[0]), float64(p[1]))
			if r > s.Radius+1e-4 {
				t.Errorf("%s: site %d at radius %v outside disk %v", dist, i, r, s.Radius)
			}
			if math.Abs(float64(p[2])) > s.Height+1e-4 {
				t.Errorf("%s: site %d at z=%v outside band %v", dist, i, p[2], s.Height)
			}
		}
	}
}

func TestSampleSortedByX(t *testing.T) {
	sites := sample(11, defaultSampler(200, 0.25))

	if !sort.SliceIsSorted(sites, func(i, j int) bool { return sites[i][0] < sites[j][0] }) {
		t.Error("sites not in ascending x order")
	}
}

func TestSampleCountBounded(t *testing.T) {
	for _, count := range []int{1, 10, 100} {
		sites := sample(5, defaultSampler(count, 0.25))
		if len(sites) > count {
			t.Errorf("count %d: got %d sites", count, len(sites))
		}
	}

	if sites := sample(5, defaultSampler(100, 0.25)); len(sites) == 0 {
		t.Error("count 100: got no sites")
	}

	if sites := sample(5, defaultSampler(0, 0.25)); len(sites) != 0 {
		t.Errorf("zero count produced %d sites", len(sites))
	}
}

// A density far above what the separation allows exhausts the budget.
func TestSampleShortfall(t *testing.T) {
	sites := sample(9, defaultSampler(200, 20))

	if len(sites) >= 200 {
		t.Errorf("expected shortfall, got %d sites", len(sites))
	}
	if len(sites) == 0 {
		t.Error("expected at least one site")
	}
}

func TestSampleDeterministic(t *testing.T) {
	s := defaultSampler(150, 0.25)
	a := sample(42, s)
	b := sample(42, s)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("site %d differs: %v vs %v", i, a[i], b[i])
		}
	}

	c := sample(44, s)
	if len(c) == len(a) && c[0] == a[0] {
		t.Error("different seeds produced the same first site")
	}
}

func TestSampleLowBitAliases(t *testing.T) {
	s := defaultSampler(50, 0.25)
	a := sample(42, s)
	b := sample(43, s)

	if len(a) != len(b) || a[0] != b[0] {
		t.Error("seeds differing only in bit 0 should share a stream")
	}
}

func TestSampleTinyBetaConcentrationStaysFinite(t *testing.T) {
	s := defaultSampler(200, 0.25)
	s.HeightDist = SymmetricBeta(1e-3)

	for i, p := range sample(7, s) {
		z := float64(p[2])
		if math.IsNaN(z) || math.Abs(z) > s.Height+1e-4 {
			t.Fatalf("site %d has z=%v", i, z)
		}
	}
}

func TestSampleFlatDisk(t *testing.T) {
	s := defaultSampler(50, 0.25)
	s.Height = 0
	for _, p := range sample(3, s) {
		if p[2] != 0 {
			t.Fatalf("z = %v, want 0", p[2])
		}
	}
}

func TestBetaHeightConcentratesNearMidPlane(t *testing.T) {
	uniform := defaultSampler(400, 0.05)
	uniform.HeightDist = UniformHeight()
	beta := defaultSampler(400, 0.05)

	meanAbsZ := func(sites []mgl32.Vec3) float64 {
		total := 0.0
		for _, p := range sites {
			total += math.Abs(float64(p[2]))
		}
		return total / float64(len(sites))
	}

	u := meanAbsZ(sample(21, uniform))
	b := meanAbsZ(sample(21, beta))
	if b >= u {
		t.Errorf("beta mean |z| %v not below uniform %v", b, u)
	}
}
