package spatial

import "math"

// Grid buckets point indices into square cells so neighbours can be visited
// ring by ring outward from a query point.
type Grid struct {
	origin   Point
	cellSize float64
	cols     int
	rows     int
	buckets  [][]int
}

// NewGrid buckets points over the box [min, max]. Points outside the box are
// clamped into the border cells.
func NewGrid(points []Point, min, max Point, cellSize float64) *Grid {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = math.Max(max.X-min.X, max.Y-min.Y)
	}
	if cellSize <= 0 {
		cellSize = 1
	}

	g := &Grid{
		origin:   min,
		cellSize: cellSize,
		cols:     max1(int(math.Ceil((max.X - min.X) / cellSize))),
		rows:     max1(int(math.Ceil((max.Y - min.Y) / cellSize))),
	}
	g.buckets = make([][]int, g.cols*g.rows)

	for i, p := range points {
		c, r := g.cellOf(p)
		idx := r*g.cols + c
		g.buckets[idx] = append(g.buckets[idx], i)
	}
	return g
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// MaxRing is the largest ring index that can contain any cell of the grid.
func (g *Grid) MaxRing() int {
	return max(g.cols, g.rows)
}

func (g *Grid) cellOf(p Point) (int, int) {
	c := int(math.Floor((p.X - g.origin.X) / g.cellSize))
	r := int(math.Floor((p.Y - g.origin.Y) / g.cellSize))
	return clamp(c, 0, g.cols-1), clamp(r, 0, g.rows-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ring calls fn for every point index in cells at Chebyshev distance k from
// the cell containing p. Cells are visited row by row; indices within a cell
// in insertion order.
func (g *Grid) Ring(p Point, k int, fn func(index int)) {
	c0, r0 := g.cellOf(p)

	for r := r0 - k; r <= r0+k; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		if r == r0-k || r == r0+k {
			for c := c0 - k; c <= c0+k; c++ {
				g.visit(c, r, fn)
			}
			continue
		}
		g.visit(c0-k, r, fn)
		if k > 0 {
			g.visit(c0+k, r, fn)
		}
	}
}

func (g *Grid) visit(c, r int, fn func(int)) {
	if c < 0 || c >= g.cols {
		return
	}
	for _, idx := range g.buckets[r*g.cols+c] {
		fn(idx)
	}
}
