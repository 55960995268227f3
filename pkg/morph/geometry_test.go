package morph

import (
	"math"
	"testing"
)

func TestInCircumcircle(t *testing.T) {
	a := Point{0, 0}
	b := Point{10, 0}
	c := Point{0, 10}

	inside := Point{2, 2}
	if !InCircumcircle(inside, a, b, c) {
		t.Error("expected point near centroid to be inside circumcircle")
	}

	outside := Point{100, 100}
	if InCircumcircle(outside, a, b, c) {
		t.Error("expected far point to be outside circumcircle")
	}

	// Orientation shouldn't matter: reversing winding must give the same answer.
	if InCircumcircle(inside, a, c, b) != InCircumcircle(inside, a, b, c) {
		t.Error("expected InCircumcircle to be invariant to triangle winding")
	}
}

func TestPointInTriangle(t *testing.T) {
	a := Point{0, 0}
	b := Point{10, 0}
	c := Point{0, 10}

	if !PointInTriangle(Point{2, 2}, a, b, c, 1e-3) {
		t.Error("expected interior point to be contained")
	}
	if PointInTriangle(Point{20, 20}, a, b, c, 1e-3) {
		t.Error("expected exterior point to not be contained")
	}
	// On-edge points are included per the epsilon tolerance.
	if !PointInTriangle(Point{5, 0}, a, b, c, 1e-3) {
		t.Error("expected edge point to be contained with tolerance")
	}
}

func TestPointInTriangle_Degenerate(t *testing.T) {
	a := Point{0, 0}
	b := Point{5, 5}
	c := Point{10, 10} // collinear with a,b
	if PointInTriangle(Point{1, 1}, a, b, c, 1e-3) {
		t.Error("expected degenerate triangle to report non-containing")
	}
}

func TestAffineFromTriangles_Identity(t *testing.T) {
	src := [3]Point{{0, 0}, {10, 0}, {0, 10}}
	dst := src

	m, ok := AffineFromTriangles(src, dst, 1e-10)
	if !ok {
		t.Fatal("expected solvable affine for non-degenerate triangle")
	}

	for _, p := range []Point{{0, 0}, {10, 0}, {0, 10}, {3, 4}} {
		got := m.Apply(p)
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("identity affine: Apply(%v) = %v, want %v", p, got, p)
		}
	}
}

func TestAffineFromTriangles_Translation(t *testing.T) {
	src := [3]Point{{0, 0}, {10, 0}, {0, 10}}
	dst := [3]Point{{5, 5}, {15, 5}, {5, 15}}

	m, ok := AffineFromTriangles(src, dst, 1e-10)
	if !ok {
		t.Fatal("expected solvable affine")
	}

	for _, p := range src {
		got := m.Apply(p)
		want := Point{p.X + 5, p.Y + 5}
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Errorf("Apply(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestAffineFromTriangles_Degenerate(t *testing.T) {
	src := [3]Point{{0, 0}, {5, 5}, {10, 10}}
	dst := [3]Point{{0, 0}, {1, 0}, {2, 0}}
	if _, ok := AffineFromTriangles(src, dst, 1e-10); ok {
		t.Error("expected degenerate collinear source triangle to be rejected")
	}
}

func TestTriangleArea(t *testing.T) {
	area := TriangleArea(Point{0, 0}, Point{10, 0}, Point{0, 10})
	if math.Abs(area-50) > 1e-9 {
		t.Errorf("expected area 50, got %v", area)
	}
	// Winding shouldn't change the unsigned area.
	area2 := TriangleArea(Point{0, 0}, Point{0, 10}, Point{10, 0})
	if math.Abs(area2-50) > 1e-9 {
		t.Errorf("expected area 50 regardless of winding, got %v", area2)
	}
}
