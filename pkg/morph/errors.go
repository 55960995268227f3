package morph

import "errors"

// Sentinel errors returned by the morph engine. Callers should check
// identity with errors.Is rather than comparing messages.
var (
	// ErrInsufficientLandmarks is returned when either landmark array
	// has fewer than MinLandmarks valid entries. Recovery: the source
	// image has already been copied to the output buffer.
	ErrInsufficientLandmarks = errors.New("morph: fewer than 400 valid landmarks")

	// ErrDegenerateMesh is returned when triangulation of the
	// key-triangulation index set yields zero usable triangles.
	ErrDegenerateMesh = errors.New("morph: triangulation produced no usable triangles")

	// ErrMaskConstructionFailed is returned when fewer than 3 valid
	// hull points are available to build the feathered face mask.
	ErrMaskConstructionFailed = errors.New("morph: fewer than 3 valid hull points")

	// ErrDimensionMismatch is returned when the output buffer's
	// dimensions do not match the source buffer's. This is fatal for
	// the call; no partial write is performed.
	ErrDimensionMismatch = errors.New("morph: output buffer dimensions do not match source")

	// ErrOverlayAnchorMissing is returned by PlaceOverlay when a
	// required anchor landmark for the requested addon kind is absent.
	ErrOverlayAnchorMissing = errors.New("morph: required overlay anchor landmark is absent")
)
