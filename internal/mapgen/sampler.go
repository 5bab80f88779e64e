package mapgen

import (
	"math"
	"math/rand/v2"

	"stellaris-server/internal/rng"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/btree"
	"gonum.org/v1/gonum/stat/distuv"
)

// site is an accepted position in the x-ordered index. seq breaks ties
// between equal x so no site replaces another.
type site struct {
	pos mgl32.Vec3
	seq int
}

func lessSite(a, b site) bool {
	if a.pos[0] != b.pos[0] {
		return a.pos[0] < b.pos[0]
	}
	return a.seq < b.seq
}

type Sampler struct {
	Radius        float64
	Height        float64
	SiteCount     int
	MinSeparation float64
	HeightDist    HeightDistribution
}

// Sample places up to SiteCount sites in the disk of Radius with |z| <= Height
// such that no two accepted sites are closer than MinSeparation in the xy plane.
//
// Each attempt draws x, y and z. Candidates are uniform in the bounding square
// and those outside the disk are discarded; a discarded candidate still spends
// an attempt. The budget is 2*SiteCount attempts, so fewer sites than requested
// may come back. Sites are returned in ascending x.
func (s Sampler) Sample(stream *rng.Stream) []mgl32.Vec3 {
	if s.SiteCount <= 0 {
		return nil
	}

	r := rand.New(stream)
	drawZ := s.heightSampler(r, stream)
	index := btree.NewG[site](32, lessSite)
	r2 := s.Radius * s.Radius
	sep2 := s.MinSeparation * s.MinSeparation

	for attempt := 0; attempt < 2*s.SiteCount && index.Len() < s.SiteCount; attempt++ {
		x := (r.Float64()*2 - 1) * s.Radius
		y := (r.Float64()*2 - 1) * s.Radius
		z := drawZ()

		if x*x+y*y > r2 {
			continue
		}

		candidate := site{pos: mgl32.Vec3{float32(x), float32(y), float32(z)}, seq: attempt}
		if s.crowded(index, candidate.pos, sep2) {
			continue
		}
		index.ReplaceOrInsert(candidate)
	}

	out := make([]mgl32.Vec3, 0, index.Len())
	index.Ascend(func(item site) bool {
		out = append(out, item.pos)
		return true
	})
	return out
}

// crowded checks the accepted sites whose x lies in [x-sep, x+sep].
func (s Sampler) crowded(index *btree.BTreeG[site], pos mgl32.Vec3, sep2 float64) bool {
	x := float64(pos[0])
	loX := float32(x - s.MinSeparation)
	if float64(loX) > x-s.MinSeparation {
		loX = math.Nextafter32(loX, float32(math.Inf(-1)))
	}
	lo := site{pos: mgl32.Vec3{loX}, seq: math.MinInt}
	hi := x + s.MinSeparation

	hit := false
	index.AscendGreaterOrEqual(lo, func(other site) bool {
		if float64(other.pos[0]) > hi {
			return false
		}
		if planarDist2(pos, other.pos) < sep2 {
			hit = true
			return false
		}
		return true
	})
	return hit
}

func planarDist2(a, b mgl32.Vec3) float64 {
	dx := float64(a[0]) - float64(b[0])
	dy := float64(a[1]) - float64(b[1])
	return dx*dx + dy*dy
}

func (s Sampler) heightSampler(r *rand.Rand, src rand.Source) func() float64 {
	switch s.HeightDist.Kind {
	case HeightSymmetricBeta:
		beta := distuv.Beta{
			Alpha: s.HeightDist.Concentration,
			Beta:  s.HeightDist.Concentration,
			Src:   src,
		}
		return func() float64 {
			v := beta.Rand()
			if math.IsNaN(v) {
				return 0
			}
			return (v - 0.5) * 2 * s.Height
		}
	default:
		return func() float64 {
			return (r.Float64()*2 - 1) * s.Height
		}
	}
}
