package morph

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/facemorph/morphcore/internal/config"
)

// Stats accumulates per-call diagnostic counters, reset at the start of
// every Morph call. It is safe to read after Morph returns; it must not
// be read concurrently with an in-flight call on the same Engine.
type Stats struct {
	TrianglesTotal    int
	TrianglesWarped   int
	TrianglesRejected int
	HullMaskBuilt     bool
	MouthMaskActive   bool
	ColorCorrected    bool
}

// scratchBuffers are the per-(width,height) intermediate buffers reused
// across Morph calls, invalidated whenever the source dimensions change.
type scratchBuffers struct {
	resizedTarget *Buffer
	warped        *Buffer
}

// Engine is the morph orchestrator of spec §4.7. Besides its
// configuration it holds a scratch buffer pool and the Stats of the
// last call. The pool map is guarded by a mutex, but the scratch
// buffers and Stats are shared by every call on the Engine, so two
// concurrent Morph calls on one Engine are not safe; separate Engines
// may run in parallel on disjoint buffers.
type Engine struct {
	cfg *config.Config

	mu      sync.Mutex
	scratch map[[2]int]*scratchBuffers

	Stats Stats
}

// NewEngine builds an Engine from cfg. If cfg is nil, config.Default()
// is used.
func NewEngine(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("morph: invalid configuration: %w", err)
	}
	return &Engine{
		cfg:     cfg,
		scratch: make(map[[2]int]*scratchBuffers),
	}, nil
}

// scratchFor returns the scratch buffers for a w x h call, allocating
// or reusing the pool entry keyed by dimensions. Any entry for a
// different size is replaced wholesale, per spec §3's pool-invalidation
// rule.
func (e *Engine) scratchFor(w, h int) *scratchBuffers {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := [2]int{w, h}
	sb, ok := e.scratch[key]
	if !ok {
		sb = &scratchBuffers{
			resizedTarget: NewBuffer(w, h),
			warped:        NewBuffer(w, h),
		}
		e.scratch = map[[2]int]*scratchBuffers{key: sb}
	}
	return sb
}

// mappedTriangle is a Delaunay triangle together with the source and
// scaled-target vertex triples it resolved to, per spec §4.7 step 6.
type mappedTriangle struct {
	srcTri [3]Point
	tgtTri [3]Point
}

// Morph implements the orchestrator contract of spec §4.7:
// morph(src_img, tgt_img, src_lm, tgt_lm, alpha, out_img, isAnimal).
// On ErrDimensionMismatch out is not written. On every other failure
// src has already been copied into out and a sentinel error is
// returned, so out is left in a valid state.
func (e *Engine) Morph(srcImg, tgtImg *Buffer, srcLM, tgtLM LandmarkSet, alpha float64, outImg *Buffer, isAnimal bool) error {
	e.Stats = Stats{}

	if !SameDimensions(srcImg, outImg) {
		return ErrDimensionMismatch
	}
	if err := outImg.CopyFrom(srcImg); err != nil {
		return err
	}

	if srcLM.CountValid() < MinLandmarks || tgtLM.CountValid() < MinLandmarks {
		return ErrInsufficientLandmarks
	}

	if alpha <= 0 {
		return nil
	}

	// Step 1: scale target landmarks into source-image space.
	sx := float64(srcImg.W) / float64(tgtImg.W)
	sy := float64(srcImg.H) / float64(tgtImg.H)
	tgtLMPrime := tgtLM.Scale(sx, sy)

	// Step 2: triangulate the key-index subset of the scaled target.
	triangles, err := e.triangulate(tgtLMPrime, srcImg.W, srcImg.H, len(srcLM), len(tgtLMPrime))
	if err != nil {
		return err
	}
	e.Stats.TrianglesTotal = len(triangles)
	if len(triangles) == 0 {
		return ErrDegenerateMesh
	}

	sb := e.scratchFor(srcImg.W, srcImg.H)

	// Step 4: rescale target image into source dimensions.
	resizedTarget, err := tgtImg.ResizeTo(srcImg.W, srcImg.H)
	if err != nil {
		return fmt.Errorf("morph: resizing target: %w", err)
	}
	sb.resizedTarget = resizedTarget

	// Step 5: reset warped scratch buffer (A=0 sentinel).
	sb.warped.Clear()
	warped := sb.warped

	// Step 6: build and warp each accepted mapping, in triangulator order.
	mapped := e.resolveTriangles(triangles, srcLM, tgtLMPrime)
	e.warpTriangles(resizedTarget, warped, mapped)

	// Step 7: hull mask.
	hullMask, err := BuildHullMask(srcLM, srcImg.W, srcImg.H, e.cfg.Engine.HullErosion, e.cfg.Engine.BlurRadii)
	if err != nil {
		return err
	}
	e.Stats.HullMaskBuilt = true

	// Step 8: mouth mask.
	mouthMask, mouthActive, err := BuildMouthMask(srcLM, srcImg.W, srcImg.H)
	if err != nil {
		return err
	}
	e.Stats.MouthMaskActive = mouthActive

	// Step 9: color correction against the source, masked by the hull.
	if err := ColorCorrect(srcImg, warped, hullMask, e.cfg.Engine.ColorCorrectionStrength); err != nil {
		return err
	}
	e.Stats.ColorCorrected = true

	// Step 10: composite.
	composite(srcImg, warped, hullMask, mouthMask, mouthActive, alpha, isAnimal, outImg)
	return nil
}

// triangulate performs spec §4.7 step 2: filter KeyIndices to those
// with a valid, in-bounds scaled-target landmark, triangulate that
// point set, then drop any resulting triangle whose indices exceed
// either landmark array's length.
func (e *Engine) triangulate(tgtLMPrime LandmarkSet, w, h, srcLen, tgtLen int) ([]Triangle, error) {
	idxOf := make([]int, 0, len(KeyIndices))
	pts := make([]Point, 0, len(KeyIndices))
	for _, idx := range KeyIndices {
		p, ok := tgtLMPrime.At(idx)
		if !ok {
			continue
		}
		idxOf = append(idxOf, idx)
		pts = append(pts, p)
	}

	local := Triangulate(pts, w, h)

	out := make([]Triangle, 0, len(local))
	for _, tr := range local {
		a, b, c := idxOf[tr.A], idxOf[tr.B], idxOf[tr.C]
		if a >= srcLen || b >= srcLen || c >= srcLen || a >= tgtLen || b >= tgtLen || c >= tgtLen {
			continue
		}
		out = append(out, Triangle{A: a, B: b, C: c})
	}
	return out, nil
}

// resolveTriangles builds the source/target vertex triples for each
// mapped triangle, rejecting any triangle with an absent vertex or
// either triangle's unsigned area below the configured minimum, per
// spec §4.7 step 6. Order is preserved from triangles.
func (e *Engine) resolveTriangles(triangles []Triangle, srcLM, tgtLMPrime LandmarkSet) []mappedTriangle {
	out := make([]mappedTriangle, 0, len(triangles))
	for _, tr := range triangles {
		sa, ok1 := srcLM.At(tr.A)
		sb2, ok2 := srcLM.At(tr.B)
		sc, ok3 := srcLM.At(tr.C)
		ta, ok4 := tgtLMPrime.At(tr.A)
		tb, ok5 := tgtLMPrime.At(tr.B)
		tc, ok6 := tgtLMPrime.At(tr.C)
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
			e.Stats.TrianglesRejected++
			continue
		}

		srcTri := [3]Point{sa, sb2, sc}
		tgtTri := [3]Point{ta, tb, tc}
		if TriangleArea(srcTri[0], srcTri[1], srcTri[2]) < e.cfg.Engine.MinTriangleArea ||
			TriangleArea(tgtTri[0], tgtTri[1], tgtTri[2]) < e.cfg.Engine.MinTriangleArea {
			e.Stats.TrianglesRejected++
			continue
		}

		out = append(out, mappedTriangle{srcTri: srcTri, tgtTri: tgtTri})
	}
	return out
}

// warpTriangles computes each mapped triangle's warp concurrently into
// a private scratch patch, then applies the patches to warped strictly
// in triangulator order on the calling goroutine — preserving the
// overlap overwrite order spec §4.3 requires while still distributing
// the per-pixel work across workers.
func (e *Engine) warpTriangles(resizedTarget, warped *Buffer, mapped []mappedTriangle) {
	if len(mapped) == 0 {
		return
	}

	patches := make([]*Buffer, len(mapped))
	limit := e.cfg.Engine.MaxWorkers
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(limit)

	for i, mt := range mapped {
		i, mt := i, mt
		g.Go(func() error {
			patch := NewBuffer(warped.W, warped.H)
			WarpTriangle(resizedTarget, patch, mt.tgtTri, mt.srcTri, e.cfg.Engine.MinAffineDet, e.cfg.Engine.Epsilon)
			patches[i] = patch
			return nil
		})
	}
	_ = g.Wait()

	for _, patch := range patches {
		applyPatch(warped, patch)
		e.Stats.TrianglesWarped++
	}
}

// applyPatch copies every pixel patch wrote (A>0) onto dst, leaving
// untouched pixels in dst unmodified.
func applyPatch(dst, patch *Buffer) {
	for i := 0; i < len(patch.Pix); i += 4 {
		if patch.Pix[i+3] == 0 {
			continue
		}
		dst.Pix[i] = patch.Pix[i]
		dst.Pix[i+1] = patch.Pix[i+1]
		dst.Pix[i+2] = patch.Pix[i+2]
		dst.Pix[i+3] = patch.Pix[i+3]
	}
}

// composite implements spec §4.7 step 10.
func composite(src, warped *Buffer, hullMask, mouthMask *Mask, mouthActive bool, alpha float64, isAnimal bool, out *Buffer) {
	n := src.W * src.H
	for i := 0; i < n; i++ {
		o := i * 4
		m := hullMask.Valuef(i)

		var beta float64
		switch {
		case isAnimal:
			if m > 0.1 {
				beta = alpha
			}
		case alpha > 0.95:
			beta = math.Sqrt(m) * alpha
		default:
			beta = m * alpha
		}

		mu := 0.0
		if mouthActive && !isAnimal {
			mu = mouthMask.Valuef(i)
		}

		srcR, srcG, srcB := float64(src.Pix[o]), float64(src.Pix[o+1]), float64(src.Pix[o+2])
		if warped.Pix[o+3] > 0 && beta > 0.01 {
			wR, wG, wB := float64(warped.Pix[o]), float64(warped.Pix[o+1]), float64(warped.Pix[o+2])
			morphedR := srcR*(1-beta) + wR*beta
			morphedG := srcG*(1-beta) + wG*beta
			morphedB := srcB*(1-beta) + wB*beta

			out.Pix[o] = clampByte(math.Round(morphedR*(1-mu) + srcR*mu))
			out.Pix[o+1] = clampByte(math.Round(morphedG*(1-mu) + srcG*mu))
			out.Pix[o+2] = clampByte(math.Round(morphedB*(1-mu) + srcB*mu))
		} else {
			out.Pix[o] = byte(srcR)
			out.Pix[o+1] = byte(srcG)
			out.Pix[o+2] = byte(srcB)
		}
		out.Pix[o+3] = 255
	}
}
