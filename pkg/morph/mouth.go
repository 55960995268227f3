package morph

import "math"

// Mouth-open detector thresholds and scale, per spec §4.5.
const (
	mouthRatioFloor    = 0.08
	mouthRatioRange    = 0.25
	mouthOpenGate      = 0.15
	mouthMaskBoost     = 1.5
	mouthMaskBlurPx    = 3
	mouthMinGapDivisor = 1.0
)

// MouthOpenness computes the openness score of spec §4.5 from the
// inner-lip top/bottom (lm[13], lm[14]) and corner (lm[78], lm[308])
// landmarks. Returns ok=false if any of the four required landmarks
// is absent.
func MouthOpenness(lm LandmarkSet) (openness float64, ok bool) {
	top, ok1 := lm.At(13)
	bottom, ok2 := lm.At(14)
	left, ok3 := lm.At(78)
	right, ok4 := lm.At(308)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, false
	}

	gap := math.Abs(right.X - left.X)
	if gap < mouthMinGapDivisor {
		gap = mouthMinGapDivisor
	}

	ratio := math.Abs(bottom.Y-top.Y) / gap
	return clamp01((ratio - mouthRatioFloor) / mouthRatioRange), true
}

// BuildMouthMask builds the mouth-interior preservation mask of spec
// §4.5: absent (nil, false) when the openness score can't be computed
// or falls below the 0.15 gate; otherwise the inner-lip polygon is
// rasterized, lightly blurred for anti-aliased edges, and scaled by
// min(1, 1.5*openness).
func BuildMouthMask(lm LandmarkSet, w, h int) (*Mask, bool, error) {
	openness, ok := MouthOpenness(lm)
	if !ok || openness < mouthOpenGate {
		return nil, false, nil
	}

	pts := gatherValid(lm, InnerLipIndices[:])
	if len(pts) < 3 {
		return nil, false, nil
	}

	mask, err := rasterizePolygon(pts, w, h)
	if err != nil {
		return nil, false, err
	}

	mask, err = blurMaskPass(mask, mouthMaskBlurPx)
	if err != nil {
		return nil, false, err
	}

	mask.scaleValues(math.Min(1, mouthMaskBoost*openness))
	return mask, true, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
