package morph

import (
	"math"

	"github.com/facemorph/morphcore/internal/config"
)

// HeadPose is the coarse yaw/roll estimate of spec §4.8, derived from
// three fixed landmarks.
type HeadPose struct {
	Roll float64 // radians, atan2-derived eye-line tilt
	Yaw  float64 // radians, positive when the face turns toward the right cheek
}

// EstimateHeadPose computes roll from the eye-corner pair (lm[33],
// lm[263]) and yaw from the nose/cheek triple (lm[1], lm[234],
// lm[454]), per spec §4.8. ok is false if any of the five required
// landmarks is absent.
func EstimateHeadPose(lm LandmarkSet) (pose HeadPose, ok bool) {
	leftEye, ok1 := lm.At(33)
	rightEye, ok2 := lm.At(263)
	nose, ok3 := lm.At(1)
	leftCheek, ok4 := lm.At(234)
	rightCheek, ok5 := lm.At(454)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return HeadPose{}, false
	}

	roll := math.Atan2(rightEye.Y-leftEye.Y, rightEye.X-leftEye.X)

	distL := dist(nose, leftCheek)
	distR := dist(nose, rightCheek)
	sum := distL + distR
	var yaw float64
	if sum > 0 {
		yaw = ((distL - distR) / sum) * (math.Pi / 2)
	}

	return HeadPose{Roll: roll, Yaw: yaw}, true
}

func dist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// overlayPlacement is the resolved center, size, and pose for a single
// addon draw, per spec §4.8's per-kind placement table.
type overlayPlacement struct {
	Center   Point
	Width    float64
	Height   float64
	Pose     HeadPose
	FlipY    bool
}

// resolvePlacement computes the size and center for kind from lm and
// the overlay's native aspect ratio (overlayW/overlayH), per the
// per-kind table in spec §4.8. Every kind in that table applies the Y
// flip documented in spec §9 (asset orientation compatibility).
func resolvePlacement(kind AddonKind, lm LandmarkSet, overlayW, overlayH int, widthFactor float64) (overlayPlacement, bool) {
	pose, ok := EstimateHeadPose(lm)
	if !ok {
		return overlayPlacement{}, false
	}

	aspect := float64(overlayH) / float64(overlayW)

	switch kind {
	case AddonGlasses:
		left, ok1 := lm.At(33)
		right, ok2 := lm.At(263)
		if !ok1 || !ok2 {
			return overlayPlacement{}, false
		}
		w := widthFactor * dist(left, right)
		return overlayPlacement{
			Center: midpoint(left, right),
			Width:  w,
			Height: w * aspect,
			Pose:   pose,
			FlipY:  true,
		}, true

	case AddonMoustache:
		left, ok1 := lm.At(61)
		right, ok2 := lm.At(291)
		if !ok1 || !ok2 {
			return overlayPlacement{}, false
		}
		w := widthFactor * dist(left, right)
		h := w * aspect
		center := midpoint(left, right)
		center.Y -= 0.3 * h
		return overlayPlacement{Center: center, Width: w, Height: h, Pose: pose, FlipY: true}, true

	case AddonHat:
		forehead, ok1 := lm.At(10)
		leftCheek, ok2 := lm.At(234)
		rightCheek, ok3 := lm.At(454)
		if !ok1 || !ok2 || !ok3 {
			return overlayPlacement{}, false
		}
		w := widthFactor * dist(leftCheek, rightCheek)
		h := w * aspect
		center := Point{X: (leftCheek.X + rightCheek.X) / 2, Y: forehead.Y}
		center.Y -= 0.2 * h
		return overlayPlacement{Center: center, Width: w, Height: h, Pose: pose, FlipY: true}, true

	default:
		return overlayPlacement{}, false
	}
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// PlaceOverlay implements spec §4.8/§6's place_overlay operation: it
// draws overlay onto frame at the pose and placement derived from lm
// for the given kind, applying the documented transform order
// (translate to center, rotate by roll, scale X by the faux-perspective
// yaw factor, flip Y for the three named kinds, draw centered at
// origin). The per-kind width multiplier comes from the engine's
// AddonConfig. Returns ErrOverlayAnchorMissing if a required anchor
// landmark is absent.
func (e *Engine) PlaceOverlay(frame *Buffer, overlay *Buffer, kind AddonKind, lm LandmarkSet) error {
	widthFactor := addonWidthFactor(e.cfg, kind)
	return placeOverlay(frame, overlay, kind, lm, widthFactor)
}

// addonWidthFactor selects the configured width multiplier for kind.
func addonWidthFactor(cfg *config.Config, kind AddonKind) float64 {
	switch kind {
	case AddonGlasses:
		return cfg.Addon.GlassesWidthFactor
	case AddonMoustache:
		return cfg.Addon.MoustacheWidthFactor
	case AddonHat:
		return cfg.Addon.HatWidthFactor
	default:
		return 1.0
	}
}

// placeOverlay is the buffer-level drawing routine shared by
// (*Engine).PlaceOverlay.
func placeOverlay(dst *Buffer, overlay *Buffer, kind AddonKind, lm LandmarkSet, widthFactor float64) error {
	placement, ok := resolvePlacement(kind, lm, overlay.W, overlay.H, widthFactor)
	if !ok {
		return ErrOverlayAnchorMissing
	}

	scaleXFactor := 1 - 0.3*math.Abs(placement.Pose.Yaw)
	sinR, cosR := math.Sin(placement.Pose.Roll), math.Cos(placement.Pose.Roll)

	sx := placement.Width / float64(overlay.W)
	sy := placement.Height / float64(overlay.H)

	halfW := float64(overlay.W) / 2
	halfH := float64(overlay.H) / 2

	for oy := 0; oy < overlay.H; oy++ {
		for ox := 0; ox < overlay.W; ox++ {
			_, _, _, a := overlay.At(ox, oy)
			if a == 0 {
				continue
			}

			// Overlay-local coordinates centered at origin, scaled to
			// the target footprint.
			lx := (float64(ox) - halfW) * sx
			ly := (float64(oy) - halfH) * sy

			if placement.FlipY {
				ly = -ly
			}

			// Faux-perspective X scale, applied before rotation per the
			// documented transform order.
			lx *= scaleXFactor

			rx := lx*cosR - ly*sinR
			ry := lx*sinR + ly*cosR

			dx := int(math.Round(placement.Center.X + rx))
			dy := int(math.Round(placement.Center.Y + ry))

			r, g, b, _ := overlay.At(ox, oy)
			dst.Set(dx, dy, r, g, b, 255)
		}
	}
	return nil
}
