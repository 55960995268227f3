package morph

// HullIndices is the fixed, ordered list of 36 landmark indices
// tracing the face contour in walk order, per spec §3. The indices
// follow the standard 478-point face-mesh topology's face-oval walk.
var HullIndices = [36]int{
	10, 338, 297, 332, 284, 251, 389, 356, 454, 323,
	361, 288, 397, 365, 379, 378, 400, 377, 152, 148,
	176, 149, 150, 136, 172, 58, 132, 93, 234, 127,
	162, 21, 54, 103, 67, 109,
}

// InnerLipIndices is the fixed, ordered 20-index walk of the inner-lip
// polygon used by the mouth-open detector and mask, per spec §4.5.
var InnerLipIndices = [20]int{
	78, 95, 88, 178, 87, 14, 317, 402, 318, 324,
	308, 415, 310, 311, 312, 13, 82, 81, 80, 191,
}

// KeyIndices is the fixed, de-duplicated, sorted set of landmark
// indices used as the Delaunay mesh vertex set, per spec §3: contour,
// eyes, eyebrows, nose, lips (inner+outer), cheeks, forehead, iris.
var KeyIndices = []int{
	0, 1, 2, 4, 5, 6, 7, 8, 9, 10, 13, 14, 17, 19, 21, 33, 36, 37, 39, 40,
	46, 48, 50, 52, 53, 54, 55, 58, 61, 63, 64, 65, 66, 67, 70, 78, 80,
	81, 82, 84, 87, 88, 91, 93, 94, 95, 97, 98, 103, 105, 107, 109, 122,
	127, 132, 133, 136, 144, 145, 146, 147, 148, 149, 150, 151, 152, 153,
	154, 155, 157, 158, 159, 160, 161, 162, 163, 168, 172, 173, 176, 178,
	181, 185, 187, 191, 193, 195, 197, 203, 205, 234, 246, 249, 251, 263,
	266, 267, 269, 270, 276, 278, 280, 282, 283, 284, 285, 288, 291, 293,
	294, 295, 296, 297, 300, 308, 310, 311, 312, 314, 317, 318, 321, 323,
	324, 326, 327, 332, 334, 336, 338, 351, 356, 361, 362, 365, 373, 374,
	375, 376, 377, 378, 379, 380, 381, 382, 384, 385, 386, 387, 388, 389,
	390, 397, 398, 400, 402, 405, 409, 411, 415, 417, 423, 425, 454, 466,
	469, 470, 471, 472, 474, 475, 476, 477,
}

// AddonKind identifies the overlay placement rule for a 2-D addon
// sticker, per spec §4.8.
type AddonKind int

const (
	// AddonGlasses anchors on the eye pair (indices 33, 263).
	AddonGlasses AddonKind = iota
	// AddonMoustache anchors on the mouth corners (indices 61, 291).
	AddonMoustache
	// AddonHat anchors on the forehead and cheek pair (indices 10, 234, 454).
	AddonHat
	// AddonGeneric has no anchor table; PlaceOverlay has no placement
	// rule for it and returns ErrOverlayAnchorMissing.
	AddonGeneric
)

// addonAnchors maps each addon kind to its placement anchor landmark
// indices, mirroring the per-kind table in spec §4.8.
var addonAnchors = map[AddonKind][]int{
	AddonGlasses:   {33, 263},
	AddonMoustache: {61, 291},
	AddonHat:       {10, 234, 454},
}
