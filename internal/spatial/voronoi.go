package spatial

import "math"

// Voronoi computes the cell of every site clipped to the convex bounds.
// cells[i] belongs to sites[i]. Among coincident sites the lowest index owns
// the cell and the others get an empty polygon.
//
// Each cell starts as the bounds and is clipped by the bisector of every
// neighbour, visited in rings of a bucket grid. Clipping stops once the next
// ring is farther than twice the cell's farthest vertex, since no bisector
// beyond that distance can cut the cell.
func Voronoi(sites []Point, bounds Polygon) []Polygon {
	n := len(sites)
	if n == 0 {
		return nil
	}

	cells := make([]Polygon, n)
	if bounds.IsEmpty() {
		return cells
	}

	minP, maxP := bounds.BoundingBox()
	area := (maxP.X - minP.X) * (maxP.Y - minP.Y)
	grid := NewGrid(sites, minP, maxP, math.Sqrt(area/float64(n)))

	for i := range sites {
		cells[i] = cellOf(i, sites, bounds, grid)
	}
	return cells
}

func cellOf(i int, sites []Point, bounds Polygon, grid *Grid) Polygon {
	site := sites[i]
	cell := bounds
	owned := true

	for k := 0; k <= grid.MaxRing(); k++ {
		grid.Ring(site, k, func(j int) {
			if j == i || !owned {
				return
			}
			other := sites[j]
			if other == site {
				if j < i {
					owned = false
				}
				return
			}
			cell = clipCloserTo(cell, site, other)
		})

		if !owned || cell.IsEmpty() {
			return Polygon{}
		}

		reach := float64(k) * grid.CellSize()
		if reach*reach > 4*cell.maxDist2(site) {
			break
		}
	}
	return cell
}

// CellAreas returns the area of every site's Voronoi cell within bounds.
func CellAreas(sites []Point, bounds Polygon) []float64 {
	cells := Voronoi(sites, bounds)
	areas := make([]float64, len(cells))
	for i, c := range cells {
		areas[i] = c.Area()
	}
	return areas
}
