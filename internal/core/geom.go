// Package core provides fundamental types shared by the engine, the game and
// the platform hosts. It contains no external dependencies (especially no
// Bubble Tea or Ebitengine) to keep simulation logic pure and testable.
package core

// Point is an integer position or velocity in world pixels.
type Point struct {
	X, Y int16
}

// Add returns p translated by v.
func (p Point) Add(v Point) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// SheetRect is a rectangular region inside a sprite sheet image.
type SheetRect struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
	W int16 `json:"w"`
	H int16 `json:"h"`
}

// Rect converts the sheet region to a drawing rectangle.
func (r SheetRect) Rect() Rect {
	return Rect{X: float32(r.X), Y: float32(r.Y), W: float32(r.W), H: float32(r.H)}
}

// Rect is a drawing rectangle in world (or source image) pixels.
type Rect struct {
	X, Y float32 // Top-left corner position
	W, H float32 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float32 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float32 {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
