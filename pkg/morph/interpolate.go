package morph

import (
	"fmt"
	"math"
)

// KeyPointCount is the number of manually placed key points consumed by
// Interpolate478, per spec §4.9: left_eye, right_eye, nose, mouth_L,
// mouth_R, chin, left_cheek, right_cheek, in that order.
const KeyPointCount = 8

const (
	keyLeftEye = iota
	keyRightEye
	keyNose
	keyMouthL
	keyMouthR
	keyChin
	keyLeftCheek
	keyRightCheek
)

// Interpolate478 expands the 8 manually placed key points of spec §4.9
// into a full 478-point landmark set, applying the disjoint,
// ordered rule list exactly as listed there. Earlier rules take
// precedence; a later rule never overwrites an index an earlier rule
// already assigned. Returns an error if any key point has a non-finite
// coordinate.
func Interpolate478(keys [KeyPointCount]Point) ([478]Point, error) {
	for i, k := range keys {
		if math.IsNaN(k.X) || math.IsNaN(k.Y) || math.IsInf(k.X, 0) || math.IsInf(k.Y, 0) {
			return [478]Point{}, fmt.Errorf("morph: key point %d has a non-finite coordinate", i)
		}
	}

	leftEye := keys[keyLeftEye]
	rightEye := keys[keyRightEye]
	nose := keys[keyNose]
	mouthL := keys[keyMouthL]
	mouthR := keys[keyMouthR]
	chin := keys[keyChin]
	leftCheek := keys[keyLeftCheek]
	rightCheek := keys[keyRightCheek]

	eyeCenter := midpoint(leftEye, rightEye)
	eyeWidth := math.Abs(rightEye.X - leftEye.X)
	faceWidth := math.Abs(rightCheek.X - leftCheek.X)
	faceHeight := 2 * math.Abs(chin.Y-eyeCenter.Y)

	var out [478]Point
	var assigned [478]bool

	assign := func(i int, p Point) {
		out[i] = Point{X: math.Round(p.X), Y: math.Round(p.Y)}
		assigned[i] = true
	}

	ring := func(start, count int, center Point, radius float64) {
		for i := 0; i < count; i++ {
			if start+i >= 478 || assigned[start+i] {
				continue
			}
			angle := 2 * math.Pi * float64(i) / float64(count)
			assign(start+i, Point{
				X: center.X + radius*math.Cos(angle),
				Y: center.Y + radius*math.Sin(angle),
			})
		}
	}

	// Rules applied strictly in the spec's listed order; forehead (0..9)
	// is listed after the chin/cheek exact copies but before the
	// half-ellipse contour, per the source-order contract of spec §9
	// ("forehead first, then contour").
	ring(33, 6, leftEye, 0.15*eyeWidth)
	ring(263, 6, rightEye, 0.15*eyeWidth)
	ring(1, 5, nose, 0.10*faceWidth)
	ring(61, 7, mouthL, 0.05*faceWidth)
	ring(291, 7, mouthR, 0.05*faceWidth)

	assign(152, chin)
	assign(234, leftCheek)
	assign(454, rightCheek)

	foreheadY := eyeCenter.Y - 0.3*faceHeight
	for i := 0; i <= 9; i++ {
		if assigned[i] {
			continue
		}
		t := float64(i) / 9
		x := leftCheek.X + (rightCheek.X-leftCheek.X)*t
		assign(i, Point{X: x, Y: foreheadY})
	}

	// Half-ellipse contour from left to right via chin, over the
	// remaining indices in 10..152.
	for i := 10; i <= 152; i++ {
		if assigned[i] {
			continue
		}
		t := float64(i-10) / float64(152-10)
		angle := math.Pi * (1 - t) // pi (left cheek) -> 0 (right cheek), passing through chin at t=0.5
		rx := faceWidth / 2
		ry := math.Abs(chin.Y - eyeCenter.Y)
		cx := (leftCheek.X + rightCheek.X) / 2
		assign(i, Point{
			X: cx + rx*math.Cos(angle),
			Y: chin.Y - ry + ry*math.Sin(angle),
		})
	}

	// Nose bridge: linear from eye_center to nose.
	for i := 168; i <= 175; i++ {
		if i >= 478 || assigned[i] {
			continue
		}
		t := float64(i-168) / float64(175-168)
		assign(i, Point{
			X: eyeCenter.X + (nose.X-eyeCenter.X)*t,
			Y: eyeCenter.Y + (nose.Y-eyeCenter.Y)*t,
		})
	}

	// Mouth band: linear from mouth_L to mouth_R plus a sinusoidal
	// vertical perturbation.
	for i := 61; i <= 291; i++ {
		if assigned[i] {
			continue
		}
		t := float64(i-61) / float64(291-61)
		x := mouthL.X + (mouthR.X-mouthL.X)*t
		y := mouthL.Y + (mouthR.Y-mouthL.Y)*t + 0.05*faceHeight*math.Sin(2*math.Pi*t)
		assign(i, Point{X: x, Y: y})
	}

	// Sinusoidal eye bands.
	assignEyeBand := func(lo, hi int, center Point) {
		for i := lo; i <= hi; i++ {
			if i >= 478 || assigned[i] {
				continue
			}
			t := float64(i-lo) / float64(hi-lo)
			angle := 2 * math.Pi * t
			assign(i, Point{
				X: center.X + 0.2*eyeWidth*math.Cos(angle),
				Y: center.Y + 0.1*eyeWidth*math.Sin(angle),
			})
		}
	}
	assignEyeBand(33, 133, leftEye)
	assignEyeBand(263, 362, rightEye)

	// Default: 20x24 grid fill across the face rectangle, for any index
	// no earlier rule touched.
	minX := math.Min(leftCheek.X, rightCheek.X)
	maxX := math.Max(leftCheek.X, rightCheek.X)
	minY := eyeCenter.Y - 0.3*faceHeight
	maxY := chin.Y

	const gridCols, gridRows = 20, 24
	gi := 0
	for i := 0; i < 478; i++ {
		if assigned[i] {
			continue
		}
		col := gi % gridCols
		row := (gi / gridCols) % gridRows
		gi++

		x := minX + (maxX-minX)*float64(col)/float64(gridCols-1)
		y := minY + (maxY-minY)*float64(row)/float64(gridRows-1)
		assign(i, Point{X: x, Y: y})
	}

	return out, nil
}
