package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Rect is a bounding box in page space, stored as two corners.
// A normalized Rect satisfies X0 <= X1 and Y0 <= Y1; PDF sources report
// y-up coordinates, so callers should Normalize before storing.
type Rect struct {
	X0, Y0 float64 // first corner
	X1, Y1 float64 // opposite corner
}

// NewRect creates a normalized Rect from two corner points.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}.Normalize()
}

// Normalize returns a copy with corners swapped as needed so that
// X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalize() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the area of the box.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Contains checks if a point is inside the box (edges inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Intersects checks if two boxes overlap or touch.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 || r.X0 > other.X1 ||
		r.Y1 < other.Y0 || r.Y0 > other.Y1)
}

// Union returns the smallest box covering both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// IsValid reports whether the box is normalized with finite coordinates.
// Zero width or height is allowed; decoders emit degenerate boxes for
// hairline curves.
func (r Rect) IsValid() bool {
	for _, v := range [4]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.X0 <= r.X1 && r.Y0 <= r.Y1
}

// MarshalJSON encodes the Rect as a four-element array [x0, y0, x1, y1],
// the on-disk form shared with the persisted page format.
func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{r.X0, r.Y0, r.X1, r.Y1})
}

// UnmarshalJSON decodes a four-element coordinate array.
func (r *Rect) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}
	if len(coords) != 4 {
		return fmt.Errorf("bbox must have 4 coordinates, got %d", len(coords))
	}
	r.X0, r.Y0, r.X1, r.Y1 = coords[0], coords[1], coords[2], coords[3]
	return nil
}
