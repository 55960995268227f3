package morph

import "testing"

func TestWarpTriangle_Identity(t *testing.T) {
	src := NewBuffer(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := byte((x + y) * 5)
			src.Set(x, y, v, v, v, 255)
		}
	}
	dst := NewBuffer(20, 20)

	tri := [3]Point{{2, 2}, {15, 2}, {2, 15}}
	WarpTriangle(src, dst, tri, tri, 1e-10, 1e-3)

	// Interior point should match source closely under an identity warp.
	rs, gs, bs, _ := src.At(5, 5)
	rd, gd, bd, ad := dst.At(5, 5)
	if ad != 255 {
		t.Fatalf("expected alpha 255 inside triangle, got %d", ad)
	}
	if absDiff(rs, rd) > 2 || absDiff(gs, gd) > 2 || absDiff(bs, bd) > 2 {
		t.Errorf("identity warp: src=(%d,%d,%d) dst=(%d,%d,%d)", rs, gs, bs, rd, gd, bd)
	}
}

func TestWarpTriangle_OutsideTriangleUntouched(t *testing.T) {
	src := NewBuffer(20, 20)
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	dst := NewBuffer(20, 20)

	tri := [3]Point{{2, 2}, {8, 2}, {2, 8}}
	WarpTriangle(src, dst, tri, tri, 1e-10, 1e-3)

	_, _, _, a := dst.At(19, 19)
	if a != 0 {
		t.Errorf("expected pixel far outside triangle to remain untouched, got alpha %d", a)
	}
}

func TestWarpTriangle_DegenerateIsNoOp(t *testing.T) {
	src := NewBuffer(10, 10)
	dst := NewBuffer(10, 10)
	collinear := [3]Point{{1, 1}, {5, 5}, {9, 9}}

	WarpTriangle(src, dst, collinear, collinear, 1e-10, 1e-3)

	for _, v := range dst.Pix {
		if v != 0 {
			t.Fatal("expected degenerate triangle to leave destination untouched")
		}
	}
}

func TestWarpTriangle_EmptyBoundingBoxIsNoOp(t *testing.T) {
	src := NewBuffer(10, 10)
	dst := NewBuffer(10, 10)
	// Entirely outside the destination bounds.
	tri := [3]Point{{-50, -50}, {-40, -50}, {-50, -40}}

	WarpTriangle(src, dst, tri, tri, 1e-10, 1e-3)

	for _, v := range dst.Pix {
		if v != 0 {
			t.Fatal("expected out-of-bounds triangle to leave destination untouched")
		}
	}
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
