package morph

import "math"

// WarpTriangle implements the piecewise-affine triangle warp of spec
// §4.3: for every destination pixel whose center lies inside dstTri,
// it writes the bilinearly sampled source color at T^-1(x,y), where T
// maps srcTri onto dstTri. Samples falling outside src's interior
// bounds, and degenerate affine solves, are silently skipped (no-op)
// per spec §7 — the destination pixel is left untouched.
//
// Overlapping triangles may overwrite one another; callers must warp
// triangles in the same fixed order (the triangulator's output order)
// on every call to keep that overwrite resolution deterministic.
func WarpTriangle(src, dst *Buffer, srcTri, dstTri [3]Point, minAffineDet, eps float64) {
	minX, minY, maxX, maxY := triangleBounds(dstTri, dst.W, dst.H)
	if minX > maxX || minY > maxY {
		return
	}

	// Inverse mapping dst -> src.
	inv, ok := AffineFromTriangles(dstTri, srcTri, minAffineDet)
	if !ok {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := Point{X: float64(x), Y: float64(y)}
			if !PointInTriangle(p, dstTri[0], dstTri[1], dstTri[2], eps) {
				continue
			}

			sp := inv.Apply(p)
			if sp.X < 0 || sp.X >= float64(src.W-1) || sp.Y < 0 || sp.Y >= float64(src.H-1) {
				continue
			}

			r, g, b := bilinearSample(src, sp.X, sp.Y)
			dst.Set(x, y, r, g, b, 255)
		}
	}
}

// triangleBounds returns the inclusive axis-aligned bounding box of
// tri, clipped to [0,w-1]x[0,h-1].
func triangleBounds(tri [3]Point, w, h int) (minX, minY, maxX, maxY int) {
	minXf := math.Min(tri[0].X, math.Min(tri[1].X, tri[2].X))
	minYf := math.Min(tri[0].Y, math.Min(tri[1].Y, tri[2].Y))
	maxXf := math.Max(tri[0].X, math.Max(tri[1].X, tri[2].X))
	maxYf := math.Max(tri[0].Y, math.Max(tri[1].Y, tri[2].Y))

	minX = clampInt(int(math.Floor(minXf)), 0, w-1)
	minY = clampInt(int(math.Floor(minYf)), 0, h-1)
	maxX = clampInt(int(math.Ceil(maxXf)), 0, w-1)
	maxY = clampInt(int(math.Ceil(maxYf)), 0, h-1)
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// bilinearSample returns the bilinearly interpolated R,G,B at
// fractional coordinate (sx,sy). The caller guarantees sx,sy lie
// within [0,W-1)x[0,H-1) so the four integer neighbors are in bounds.
func bilinearSample(b *Buffer, sx, sy float64) (r, g, bl byte) {
	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	x1, y1 := x0+1, y0+1
	fx := sx - float64(x0)
	fy := sy - float64(y0)

	r00, g00, b00, _ := b.At(x0, y0)
	r10, g10, b10, _ := b.At(x1, y0)
	r01, g01, b01, _ := b.At(x0, y1)
	r11, g11, b11, _ := b.At(x1, y1)

	blend := func(v00, v10, v01, v11 byte) byte {
		top := float64(v00)*(1-fx) + float64(v10)*fx
		bottom := float64(v01)*(1-fx) + float64(v11)*fx
		val := top*(1-fy) + bottom*fy
		return clampByte(math.Round(val))
	}

	return blend(r00, r10, r01, r11), blend(g00, g10, g01, g11), blend(b00, b10, b01, b11)
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
