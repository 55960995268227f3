package morph

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// Mask is a single-channel scalar field over an image, used as a
// per-pixel alpha blend weight, per spec's "feathered mask" concept.
// Values are in [0,255].
type Mask struct {
	W, H int
	Pix  []byte
}

// NewMask allocates a zeroed mask of the given dimensions.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Pix: make([]byte, w*h)}
}

// At returns the mask value at (x,y), or 0 for an out-of-range coordinate.
func (m *Mask) At(x, y int) byte {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return 0
	}
	return m.Pix[y*m.W+x]
}

// Valuef returns the mask value at linear pixel index i as a [0,1] weight.
func (m *Mask) Valuef(i int) float64 {
	if i < 0 || i >= len(m.Pix) {
		return 0
	}
	return float64(m.Pix[i]) / 255
}

// scaleValues multiplies every mask sample by factor, clamping to [0,255].
func (m *Mask) scaleValues(factor float64) {
	for i, v := range m.Pix {
		m.Pix[i] = clampByte(float64(v) * factor)
	}
}

// gatherValid collects the valid points referenced by indices, in
// order, dropping absent entries — used for both the hull walk (§4.4)
// and the inner-lip walk (§4.5).
func gatherValid(lm LandmarkSet, indices []int) []Point {
	pts := make([]Point, 0, len(indices))
	for _, idx := range indices {
		if p, ok := lm.At(idx); ok {
			pts = append(pts, p)
		}
	}
	return pts
}

// centroidOf returns the arithmetic mean of pts.
func centroidOf(pts []Point) Point {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(pts))
	return Point{X: cx / n, Y: cy / n}
}

// erodeToward shrinks each point toward centroid by factor (§4.4 step 3).
func erodeToward(pts []Point, centroid Point, factor float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{
			X: centroid.X + (p.X-centroid.X)*factor,
			Y: centroid.Y + (p.Y-centroid.Y)*factor,
		}
	}
	return out
}

// rasterizePolygon fills pts (a simple polygon) into a w x h mask:
// 255 inside, 0 outside.
func rasterizePolygon(pts []Point, w, h int) (*Mask, error) {
	imgPts := make([]image.Point, len(pts))
	for i, p := range pts {
		imgPts[i] = image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	defer mat.Close()

	pv := gocv.NewPointsVectorFromPoints([][]image.Point{imgPts})
	defer pv.Close()

	gocv.FillPoly(&mat, pv, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	return maskFromMat(mat)
}

// maskFromMat copies a CV_8UC1 mat's bytes into a new Mask.
func maskFromMat(mat gocv.Mat) (*Mask, error) {
	if mat.Channels() != 1 {
		return nil, fmt.Errorf("morph: expected single-channel mat, got %d channels", mat.Channels())
	}
	return &Mask{W: mat.Cols(), H: mat.Rows(), Pix: mat.ToBytes()}, nil
}

// blurMaskPass applies one Gaussian blur pass of the given radius to
// mask, returning a new Mask. Radius is converted to an odd kernel
// size (2*radius+1) as GaussianBlur requires.
func blurMaskPass(mask *Mask, radius int) (*Mask, error) {
	src, err := gocv.NewMatFromBytes(mask.H, mask.W, gocv.MatTypeCV8UC1, mask.Pix)
	if err != nil {
		return nil, fmt.Errorf("blur pass: %w", err)
	}
	defer src.Close()

	k := 2*radius + 1
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.GaussianBlur(src, &dst, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	return maskFromMat(dst)
}

// BuildHullMask builds the feathered convex-hull face mask of spec
// §4.4: gather the 36-point hull walk from lm, require >=3 valid
// points, erode toward the centroid, rasterize, then apply successive
// blur passes at the given radii (five passes of 60/50/40/25/10 px by
// default). Returns ErrMaskConstructionFailed if fewer than 3 hull
// points are present.
func BuildHullMask(lm LandmarkSet, w, h int, erosion float64, blurRadii []int) (*Mask, error) {
	pts := gatherValid(lm, HullIndices[:])
	if len(pts) < 3 {
		return nil, ErrMaskConstructionFailed
	}

	centroid := centroidOf(pts)
	eroded := erodeToward(pts, centroid, erosion)

	mask, err := rasterizePolygon(eroded, w, h)
	if err != nil {
		return nil, fmt.Errorf("rasterizing hull: %w", err)
	}

	for _, r := range blurRadii {
		mask, err = blurMaskPass(mask, r)
		if err != nil {
			return nil, fmt.Errorf("blurring hull mask: %w", err)
		}
	}
	return mask, nil
}
