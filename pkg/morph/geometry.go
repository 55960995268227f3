package morph

// Point is a 2-D coordinate in image pixel space.
type Point struct {
	X, Y float64
}

// Triangle is an unordered triple of landmark indices.
type Triangle struct {
	A, B, C int
}

// Affine is a 2-D affine transform: (x',y') = (A*x+B*y+C, D*x+E*y+F).
type Affine struct {
	A, B, C, D, E, F float64
}

// Apply maps a point through the affine transform.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// InCircumcircle reports whether p lies strictly inside the
// circumcircle of triangle (a,b,c), per spec §4.1. Translates a,b,c so
// p is at the origin and evaluates the sign of the 3x3 determinant
//
//	| ax ay ax²+ay² |
//	| bx by bx²+by² |
//	| cx cy cx²+cy² |
//
// normalized for the winding of (a,b,c) so the result doesn't depend
// on whether the triangle happens to be wound clockwise or
// counter-clockwise. Exact zero is treated as outside (tie-break).
func InCircumcircle(p, a, b, c Point) bool {
	ax, ay := a.X-p.X, a.Y-p.Y
	bx, by := b.X-p.X, b.Y-p.Y
	cx, cy := c.X-p.X, c.Y-p.Y

	aSq := ax*ax + ay*ay
	bSq := bx*bx + by*by
	cSq := cx*cx + cy*cy

	det := aSq*(bx*cy-cx*by) - bSq*(ax*cy-cx*ay) + cSq*(ax*by-bx*ay)

	if signedArea2(a, b, c) < 0 {
		det = -det
	}
	return det > 0
}

// signedArea2 returns twice the signed area of triangle (a,b,c).
// Positive for counter-clockwise winding.
func signedArea2(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// TriangleArea returns the unsigned area of triangle (a,b,c).
func TriangleArea(a, b, c Point) float64 {
	area := signedArea2(a, b, c) / 2
	if area < 0 {
		return -area
	}
	return area
}

// PointInTriangle reports whether p lies inside triangle tri (given as
// its three vertices), using the barycentric vector dot-product method
// per spec §4.1: u >= -eps && v >= -eps && u+v <= 1+eps. Degenerate
// triangles (denom < 1e-10) are reported as non-containing.
func PointInTriangle(p Point, a, b, c Point, eps float64) bool {
	v0 := Point{c.X - a.X, c.Y - a.Y}
	v1 := Point{b.X - a.X, b.Y - a.Y}
	v2 := Point{p.X - a.X, p.Y - a.Y}

	dot00 := v0.X*v0.X + v0.Y*v0.Y
	dot01 := v0.X*v1.X + v0.Y*v1.Y
	dot02 := v0.X*v2.X + v0.Y*v2.Y
	dot11 := v1.X*v1.X + v1.Y*v1.Y
	dot12 := v1.X*v2.X + v1.Y*v2.Y

	denom := dot00*dot11 - dot01*dot01
	if denom < 1e-10 && denom > -1e-10 {
		return false
	}

	invDenom := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return u >= -eps && v >= -eps && u+v <= 1+eps
}

// AffineFromTriangles solves for the unique affine transform mapping
// src's three vertices onto dst's three vertices, via the closed-form
// determinant (Cramer's rule) expressions of spec §4.1. Returns
// ok=false if |det| < minDet (degenerate/collinear source triangle).
func AffineFromTriangles(src, dst [3]Point, minDet float64) (m Affine, ok bool) {
	x0, y0 := src[0].X, src[0].Y
	x1, y1 := src[1].X, src[1].Y
	x2, y2 := src[2].X, src[2].Y

	det := x0*(y1-y2) - y0*(x1-x2) + (x1*y2 - x2*y1)
	if det < minDet && det > -minDet {
		return Affine{}, false
	}

	solve := func(u0, u1, u2 float64) (coefA, coefB, coefC float64) {
		detA := u0*(y1-y2) - y0*(u1-u2) + (u1*y2 - u2*y1)
		detB := x0*(u1-u2) - u0*(x1-x2) + (x1*u2 - x2*u1)
		detC := x0*(y1*u2-y2*u1) - y0*(x1*u2-x2*u1) + u0*(x1*y2-x2*y1)
		return detA / det, detB / det, detC / det
	}

	m.A, m.B, m.C = solve(dst[0].X, dst[1].X, dst[2].X)
	m.D, m.E, m.F = solve(dst[0].Y, dst[1].Y, dst[2].Y)
	return m, true
}
