package morph

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// MinLandmarks is the minimum number of valid landmark entries
// required by Morph, per spec §3/§7 (400 for a full face set).
const MinLandmarks = 400

// Landmark is a single 2-D point in an image's pixel space. Valid is
// false for "absent" entries (missing detection, null in the wire
// format, or a non-finite coordinate); absent entries must be skipped
// by callers, never silently substituted with a zero point.
type Landmark struct {
	X, Y  float64
	Valid bool
}

// Point returns the landmark's coordinates as a Point. Callers must
// check Valid before trusting the result.
func (l Landmark) Point() Point {
	return Point{X: l.X, Y: l.Y}
}

// LandmarkSet is an ordered sequence of landmarks indexed 0..N-1.
type LandmarkSet []Landmark

// At returns the point at index i and whether it is present. Returns
// false for an out-of-range index as well as an absent landmark.
func (s LandmarkSet) At(i int) (Point, bool) {
	if i < 0 || i >= len(s) {
		return Point{}, false
	}
	if !s[i].Valid {
		return Point{}, false
	}
	return s[i].Point(), true
}

// CountValid returns the number of present (Valid) landmarks.
func (s LandmarkSet) CountValid() int {
	n := 0
	for _, l := range s {
		if l.Valid {
			n++
		}
	}
	return n
}

// Scale returns a copy of s with every present point scaled by
// (sx, sy), per spec §4.7 step 1 (target landmarks rescaled into
// source-image space).
func (s LandmarkSet) Scale(sx, sy float64) LandmarkSet {
	out := make(LandmarkSet, len(s))
	for i, l := range s {
		if !l.Valid {
			continue
		}
		out[i] = Landmark{X: l.X * sx, Y: l.Y * sy, Valid: true}
	}
	return out
}

// DecodeLandmarks parses the landmark JSON format of spec §6: a
// top-level array of two-element [x,y] arrays, where an entry may be
// null or contain non-finite numbers; both are treated as absent.
func DecodeLandmarks(r io.Reader) (LandmarkSet, error) {
	var raw []*[2]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding landmarks: %w", err)
	}

	out := make(LandmarkSet, len(raw))
	for i, p := range raw {
		if p == nil {
			continue
		}
		x, y := p[0], p[1]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		out[i] = Landmark{X: x, Y: y, Valid: true}
	}
	return out, nil
}

// EncodeLandmarks writes the editor output format of spec §6: a JSON
// array of exactly 478 two-element integer [x,y] arrays.
func EncodeLandmarks(w io.Writer, pts [478]Point) error {
	out := make([][2]int, len(pts))
	for i, p := range pts {
		out[i] = [2]int{int(math.Round(p.X)), int(math.Round(p.Y))}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding landmarks: %w", err)
	}
	return nil
}
