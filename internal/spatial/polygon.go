package spatial

import "math"

// Polygon is a closed polygon with vertices in counterclockwise order.
type Polygon struct {
	Vertices []Point
}

// Rect returns the axis-aligned rectangle [min, max] wound counterclockwise.
func Rect(min, max Point) Polygon {
	return Polygon{Vertices: []Point{
		{min.X, min.Y},
		{max.X, min.Y},
		{max.X, max.Y},
		{min.X, max.Y},
	}}
}

// Square returns the square [-r, r]² centred on the origin.
func Square(r float64) Polygon {
	return Rect(Pt(-r, -r), Pt(r, r))
}

func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// SignedArea uses the shoelace formula; positive for counterclockwise winding.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}

	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].Cross(p.Vertices[j])
	}
	return area / 2
}

// Area is the unsigned shoelace area. Degenerate or non-finite polygons measure 0.
func (p Polygon) Area() float64 {
	a := math.Abs(p.SignedArea())
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	return a
}

func (p Polygon) BoundingBox() (Point, Point) {
	if len(p.Vertices) == 0 {
		return Point{}, Point{}
	}

	minP, maxP := p.Vertices[0], p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Y = math.Min(minP.Y, v.Y)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Y = math.Max(maxP.Y, v.Y)
	}
	return minP, maxP
}

// Contains reports whether q lies inside or on the boundary of a convex polygon.
func (p Polygon) Contains(q Point) bool {
	if p.IsEmpty() {
		return false
	}

	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i], p.Vertices[(i+1)%n]
		if b.Sub(a).Cross(q.Sub(a)) < -1e-12 {
			return false
		}
	}
	return true
}

// maxDist2 is the squared distance from q to the farthest vertex.
func (p Polygon) maxDist2(q Point) float64 {
	d := 0.0
	for _, v := range p.Vertices {
		d = math.Max(d, v.Dist2(q))
	}
	return d
}
