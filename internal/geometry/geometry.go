// Package geometry provides points and rectangles in the compositor's
// logical coordinate space, and the pointer clamp that keeps the cursor on
// the visible outputs.
package geometry

import "fmt"

// Point is a position in logical coordinates.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p translated by -o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// String returns "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Size is a width and height in logical units.
type Size struct {
	W int
	H int
}

// Rect is an integer rectangle: origin plus size.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Origin returns the top-left corner as a Point.
func (r Rect) Origin() Point {
	return Point{X: float64(r.X), Y: float64(r.Y)}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= float64(r.X) && p.X < float64(r.Right()) &&
		p.Y >= float64(r.Y) && p.Y < float64(r.Bottom())
}

// ContainsInclusive reports whether (x, y) lies inside r or on any edge.
func (r Rect) ContainsInclusive(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// String returns "WxH+X+Y".
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Transform maps a device-relative position in [0,1] on each axis to the
// given size.
func Transform(nx, ny float64, size Size) Point {
	return Point{X: nx * float64(size.W), Y: ny * float64(size.H)}
}
