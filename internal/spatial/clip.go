package spatial

// clipCloserTo keeps the part of a convex polygon that is at least as close to
// site as to other (the site's side of their perpendicular bisector).
// Sutherland-Hodgman against a single edge.
func clipCloserTo(poly Polygon, site, other Point) Polygon {
	if poly.IsEmpty() {
		return Polygon{}
	}

	normal := other.Sub(site)
	offset := normal.Dot(MidPoint(site, other))
	side := func(p Point) float64 {
		return normal.Dot(p) - offset
	}

	n := len(poly.Vertices)
	out := make([]Point, 0, n+1)
	for i := 0; i < n; i++ {
		cur := poly.Vertices[i]
		next := poly.Vertices[(i+1)%n]
		dc, dn := side(cur), side(next)

		if dc <= 0 {
			out = append(out, cur)
		}
		if (dc < 0 && dn > 0) || (dc > 0 && dn < 0) {
			t := dc / (dc - dn)
			out = append(out, cur.Add(next.Sub(cur).Scale(t)))
		}
	}

	if len(out) < 3 {
		return Polygon{}
	}
	return Polygon{Vertices: out}
}
