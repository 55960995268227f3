package morph

import "math"

// edge is an undirected pair of local point indices used while walking
// the boundary of the "bad triangle" hole during Bowyer-Watson.
type edge struct {
	u, v int
}

// sameEdge reports whether two edges connect the same pair of
// vertices, regardless of direction.
func sameEdge(a, b edge) bool {
	return (a.u == b.u && a.v == b.v) || (a.u == b.v && a.v == b.u)
}

// bwTriangle is a triangle over local indices into the working point
// array (valid input points followed by the three super-triangle
// vertices).
type bwTriangle struct {
	a, b, c int
}

// Triangulate computes a Delaunay triangulation (Bowyer-Watson) over
// points, per spec §4.2. Points outside [0,w)x[0,h) or with
// non-finite coordinates are dropped before triangulation; the
// returned triangles reference indices into the original points
// slice. Fewer than 3 valid points yields a nil (empty) triangulation,
// not an error, per spec §4.2's failure semantics.
//
// Determinism: for identical input ordering the output triangle list
// is identical modulo triangle orientation.
func Triangulate(points []Point, w, h int) []Triangle {
	remap := make([]int, 0, len(points))
	valid := make([]Point, 0, len(points))
	for i, p := range points {
		if !validCoord(p, w, h) {
			continue
		}
		remap = append(remap, i)
		valid = append(valid, p)
	}

	n := len(valid)
	if n < 3 {
		return nil
	}

	m := 10.0 * math.Max(float64(w), float64(h))
	super := [3]Point{
		{-m, -m},
		{float64(w) + 2*m, -m},
		{float64(w) / 2, float64(h) + 2*m},
	}

	all := make([]Point, n+3)
	copy(all, valid)
	all[n] = super[0]
	all[n+1] = super[1]
	all[n+2] = super[2]

	triangles := []bwTriangle{{n, n + 1, n + 2}}

	for i := 0; i < n; i++ {
		p := all[i]

		var bad []int
		for ti, tr := range triangles {
			if InCircumcircle(p, all[tr.a], all[tr.b], all[tr.c]) {
				bad = append(bad, ti)
			}
		}

		isBad := make(map[int]bool, len(bad))
		for _, ti := range bad {
			isBad[ti] = true
		}

		// Collect boundary edges: an edge of a bad triangle belongs to
		// the hole boundary iff no other bad triangle shares it.
		var boundary []edge
		for _, ti := range bad {
			tr := triangles[ti]
			edges := [3]edge{{tr.a, tr.b}, {tr.b, tr.c}, {tr.c, tr.a}}
			for _, e := range edges {
				shared := false
				for _, tj := range bad {
					if tj == ti {
						continue
					}
					otr := triangles[tj]
					oedges := [3]edge{{otr.a, otr.b}, {otr.b, otr.c}, {otr.c, otr.a}}
					for _, oe := range oedges {
						if sameEdge(e, oe) {
							shared = true
							break
						}
					}
					if shared {
						break
					}
				}
				if !shared {
					boundary = append(boundary, e)
				}
			}
		}

		// Delete bad triangles, keeping the rest in order.
		kept := triangles[:0:0]
		for ti, tr := range triangles {
			if !isBad[ti] {
				kept = append(kept, tr)
			}
		}
		triangles = kept

		for _, e := range boundary {
			triangles = append(triangles, bwTriangle{e.u, e.v, i})
		}
	}

	out := make([]Triangle, 0, len(triangles))
	for _, tr := range triangles {
		if tr.a >= n || tr.b >= n || tr.c >= n {
			continue // uses a super-triangle vertex
		}
		out = append(out, Triangle{A: remap[tr.a], B: remap[tr.b], C: remap[tr.c]})
	}
	return out
}

// validCoord reports whether p has finite coordinates inside [0,w)x[0,h).
func validCoord(p Point, w, h int) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return false
	}
	return p.X >= 0 && p.X < float64(w) && p.Y >= 0 && p.Y < float64(h)
}
