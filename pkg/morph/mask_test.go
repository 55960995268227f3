package morph

import (
	"math"
	"testing"
)

func TestCentroidOf(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	c := centroidOf(pts)
	if c.X != 5 || c.Y != 5 {
		t.Errorf("expected centroid (5,5), got %v", c)
	}
}

func TestErodeToward(t *testing.T) {
	pts := []Point{{0, 0}, {100, 0}}
	centroid := Point{50, 0}
	eroded := erodeToward(pts, centroid, 0.5)

	if math.Abs(eroded[0].X-25) > 1e-9 {
		t.Errorf("expected eroded[0].X=25, got %v", eroded[0].X)
	}
	if math.Abs(eroded[1].X-75) > 1e-9 {
		t.Errorf("expected eroded[1].X=75, got %v", eroded[1].X)
	}
}

func TestGatherValid_DropsAbsent(t *testing.T) {
	lm := make(LandmarkSet, 500)
	lm[HullIndices[0]] = Landmark{X: 1, Y: 1, Valid: true}
	lm[HullIndices[1]] = Landmark{} // absent
	lm[HullIndices[2]] = Landmark{X: 2, Y: 2, Valid: true}

	pts := gatherValid(lm, HullIndices[:3])
	if len(pts) != 2 {
		t.Fatalf("expected 2 valid points, got %d", len(pts))
	}
}

func TestBuildHullMask_InsufficientPoints(t *testing.T) {
	lm := make(LandmarkSet, 500)
	lm[HullIndices[0]] = Landmark{X: 10, Y: 10, Valid: true}
	// Only 1 valid hull point; need >= 3.

	_, err := BuildHullMask(lm, 200, 200, 0.98, []int{60, 50, 40, 25, 10})
	if err != ErrMaskConstructionFailed {
		t.Errorf("expected ErrMaskConstructionFailed, got %v", err)
	}
}

func TestMaskScaleValues(t *testing.T) {
	m := &Mask{W: 2, H: 1, Pix: []byte{100, 200}}
	m.scaleValues(0.5)
	if m.Pix[0] != 50 || m.Pix[1] != 100 {
		t.Errorf("expected [50,100], got %v", m.Pix)
	}
}

func TestMaskValuef(t *testing.T) {
	m := &Mask{W: 1, H: 1, Pix: []byte{255}}
	if v := m.Valuef(0); math.Abs(v-1.0) > 1e-9 {
		t.Errorf("expected 1.0, got %v", v)
	}
	if v := m.Valuef(99); v != 0 {
		t.Errorf("expected 0 for out-of-range index, got %v", v)
	}
}

// fullFaceLandmarkSet builds a synthetic landmark set with every
// HullIndices entry placed on an ellipse inscribed in a w x h canvas,
// suitable for exercising BuildHullMask end to end.
func fullFaceLandmarkSet(w, h int) LandmarkSet {
	lm := make(LandmarkSet, 478)
	cx, cy := float64(w)/2, float64(h)/2
	rx, ry := float64(w)*0.35, float64(h)*0.35
	n := len(HullIndices)
	for i, idx := range HullIndices {
		angle := 2 * math.Pi * float64(i) / float64(n)
		lm[idx] = Landmark{
			X:     cx + rx*math.Cos(angle),
			Y:     cy + ry*math.Sin(angle),
			Valid: true,
		}
	}
	return lm
}

func TestBuildHullMask_FalloffFromCenterOutward(t *testing.T) {
	const w, h = 200, 200
	lm := fullFaceLandmarkSet(w, h)

	mask, err := BuildHullMask(lm, w, h, 0.9, []int{40, 30, 20, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mask.W != w || mask.H != h {
		t.Fatalf("expected mask dimensions %dx%d, got %dx%d", w, h, mask.W, mask.H)
	}

	center := mask.Valuef(h/2*w + w/2)
	edge := mask.Valuef(2*w + 2)
	if center <= edge {
		t.Errorf("expected center weight (%v) to exceed near-edge weight (%v)", center, edge)
	}
	if center <= 0 {
		t.Errorf("expected a positive weight at the face center, got %v", center)
	}
}
