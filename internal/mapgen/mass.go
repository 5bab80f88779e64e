package mapgen

import (
	"math"

	"stellaris-server/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

func project(sites []mgl32.Vec3) []spatial.Point {
	points := make([]spatial.Point, len(sites))
	for i, s := range sites {
		points[i] = spatial.Pt(float64(s[0]), float64(s[1]))
	}
	return points
}

// CellAreas returns the area of each site's planar Voronoi cell within bounds,
// aligned with sites.
func CellAreas(sites []mgl32.Vec3, bounds spatial.Polygon) []float64 {
	return spatial.CellAreas(project(sites), bounds)
}

// AssignMasses derives one mass per site from its cell area. The result is
// aligned with sites; degenerate cells get mass 0.
func AssignMasses(sites []mgl32.Vec3, bounds spatial.Polygon, density float64, mass MassParams) []float32 {
	areas := CellAreas(sites, bounds)
	masses := make([]float32, len(areas))
	for i, a := range areas {
		masses[i] = float32(mass.apply(a, density))
	}
	return masses
}

func (m MassParams) apply(area, density float64) float64 {
	var v float64
	switch m.Transform {
	case MassArea:
		v = area
	case MassCubeRoot:
		v = math.Cbrt(area)
	default:
		v = area * density
	}

	v *= m.Scale
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
