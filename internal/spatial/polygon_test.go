package spatial

import (
	"math"
	"testing"
)

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want float64
	}{
		{"unit square", Rect(Pt(0, 0), Pt(1, 1)), 1},
		{"square r=2", Square(2), 16},
		{"triangle", Polygon{Vertices: []Point{{0, 0}, {4, 0}, {0, 3}}}, 6},
		{"clockwise triangle", Polygon{Vertices: []Point{{0, 0}, {0, 3}, {4, 0}}}, 6},
		{"segment", Polygon{Vertices: []Point{{0, 0}, {1, 1}}}, 0},
		{"empty", Polygon{}, 0},
		{"nan vertex", Polygon{Vertices: []Point{{0, 0}, {math.NaN(), 0}, {0, 1}}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.Area(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSquareIsCounterClockwise(t *testing.T) {
	if Square(1).SignedArea() <= 0 {
		t.Error("Square should wind counterclockwise")
	}
}

func TestPolygonContains(t *testing.T) {
	sq := Square(1)

	if !sq.Contains(Pt(0, 0)) || !sq.Contains(Pt(1, 1)) {
		t.Error("expected centre and corner inside")
	}
	if sq.Contains(Pt(1.5, 0)) {
		t.Error("expected outside point rejected")
	}
}

func TestClipCloserTo(t *testing.T) {
	sq := Square(1)

	left := clipCloserTo(sq, Pt(-0.5, 0), Pt(0.5, 0))
	if got := left.Area(); math.Abs(got-2) > 1e-12 {
		t.Errorf("left half area = %v, want 2", got)
	}
	for _, v := range left.Vertices {
		if v.X > 1e-12 {
			t.Errorf("vertex %v on the wrong side of the bisector", v)
		}
	}

	gone := clipCloserTo(sq, Pt(5, 0), Pt(0, 0))
	if !gone.IsEmpty() {
		t.Errorf("expected empty clip, got %v", gone.Vertices)
	}

	untouched := clipCloserTo(sq, Pt(0, 0), Pt(10, 0))
	if got := untouched.Area(); math.Abs(got-4) > 1e-12 {
		t.Errorf("far bisector changed area to %v", got)
	}
}
