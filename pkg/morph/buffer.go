package morph

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Buffer is a width x height array of 4-byte RGBA samples, row-major,
// top-left origin, per spec §3. len(Pix) must equal 4*W*H.
type Buffer struct {
	W, H int
	Pix  []byte
}

// NewBuffer allocates a zeroed RGBA buffer of the given dimensions.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{W: w, H: h, Pix: make([]byte, 4*w*h)}
}

// SameDimensions reports whether a and b have equal width and height.
func SameDimensions(a, b *Buffer) bool {
	return a.W == b.W && a.H == b.H
}

// At returns the RGBA sample at (x,y). Out-of-range coordinates
// return the zero sample.
func (b *Buffer) At(x, y int) (r, g, bl, a byte) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return 0, 0, 0, 0
	}
	i := 4 * (y*b.W + x)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes the RGBA sample at (x,y). Out-of-range coordinates are a
// no-op.
func (b *Buffer) Set(x, y int, r, g, bl, a byte) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	i := 4 * (y*b.W + x)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// CopyFrom copies src's pixels into b. The two buffers must have
// identical dimensions.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if !SameDimensions(b, src) {
		return fmt.Errorf("morph: CopyFrom dimension mismatch: dst %dx%d, src %dx%d", b.W, b.H, src.W, src.H)
	}
	copy(b.Pix, src.Pix)
	return nil
}

// Clear zeroes every sample (used to reset the warped scratch buffer
// to its A=0 sentinel between calls, per spec §4.7 step 5).
func (b *Buffer) Clear() {
	for i := range b.Pix {
		b.Pix[i] = 0
	}
}

// ToMat converts the buffer into a gocv.Mat (CV_8UC4, BGRA channel
// order as OpenCV expects). The caller owns the returned Mat and must
// Close it.
func (b *Buffer) ToMat() (gocv.Mat, error) {
	bgra := make([]byte, len(b.Pix))
	for i := 0; i+3 < len(b.Pix); i += 4 {
		bgra[i] = b.Pix[i+2]   // B
		bgra[i+1] = b.Pix[i+1] // G
		bgra[i+2] = b.Pix[i]   // R
		bgra[i+3] = b.Pix[i+3] // A
	}
	return gocv.NewMatFromBytes(b.H, b.W, gocv.MatTypeCV8UC4, bgra)
}

// BufferFromMat builds a Buffer from a gocv.Mat. 3-channel (BGR) and
// 4-channel (BGRA) mats are both accepted; a missing alpha channel is
// filled as fully opaque (255), matching camera_gocv.go's BGR->RGB
// conversion idiom.
func BufferFromMat(m gocv.Mat) (*Buffer, error) {
	if m.Empty() {
		return nil, fmt.Errorf("morph: cannot build buffer from empty mat")
	}

	w, h := m.Cols(), m.Rows()
	channels := m.Channels()
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("morph: unsupported mat channel count %d", channels)
	}

	raw := m.ToBytes()
	out := NewBuffer(w, h)
	for i, j := 0, 0; i < len(raw); i, j = i+channels, j+4 {
		bch, gch, rch := raw[i], raw[i+1], raw[i+2]
		a := byte(255)
		if channels == 4 {
			a = raw[i+3]
		}
		out.Pix[j] = rch
		out.Pix[j+1] = gch
		out.Pix[j+2] = bch
		out.Pix[j+3] = a
	}
	return out, nil
}

// ResizeTo returns a new buffer holding b bilinearly resampled to the
// given dimensions, per spec §4.7 step 4 ("any reasonable bilinear
// resampler"). Uses gocv's resize, the same image-processing library
// the rest of the pipeline leans on for raster operations.
func (b *Buffer) ResizeTo(w, h int) (*Buffer, error) {
	if b.W == w && b.H == h {
		out := NewBuffer(w, h)
		copy(out.Pix, b.Pix)
		return out, nil
	}

	src, err := b.ToMat()
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Resize(src, &dst, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)

	return BufferFromMat(dst)
}
