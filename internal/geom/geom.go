// Package geom holds the integer point and rectangle types used for
// surface coordinates. Y comes before X everywhere, matching row/column
// order on a character grid.
package geom

import "fmt"

// Point is a (row, column) pair. It is used both for positions and for
// sizes, where Y is the height and X the width.
type Point struct {
	Y, X int
}

// Pt is shorthand for Point{Y: y, X: x}.
func Pt(y, x int) Point {
	return Point{Y: y, X: x}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{Y: p.Y + q.Y, X: p.X + q.X}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{Y: p.Y - q.Y, X: p.X - q.X}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Y, p.X)
}

// Region is an axis-aligned rectangle: origin (Y, X) plus extent.
type Region struct {
	Y, X          int
	Height, Width int
}

// Rect builds a Region from its four components.
func Rect(y, x, height, width int) Region {
	return Region{Y: y, X: x, Height: height, Width: width}
}

// NewRegion composes a Region from a size and an origin.
func NewRegion(size, origin Point) Region {
	return Region{Y: origin.Y, X: origin.X, Height: size.Y, Width: size.X}
}

// Decompose splits r into its size and origin.
func (r Region) Decompose() (size, origin Point) {
	return Point{Y: r.Height, X: r.Width}, Point{Y: r.Y, X: r.X}
}

// Size returns the extent of r as a Point.
func (r Region) Size() Point {
	return Point{Y: r.Height, X: r.Width}
}

// Origin returns the top-left corner of r.
func (r Region) Origin() Point {
	return Point{Y: r.Y, X: r.X}
}

// Add translates r by the origin of q and grows it by q's extent.
func (r Region) Add(q Region) Region {
	return Region{Y: r.Y + q.Y, X: r.X + q.X, Height: r.Height + q.Height, Width: r.Width + q.Width}
}

// Sub is the componentwise inverse of Add.
func (r Region) Sub(q Region) Region {
	return Region{Y: r.Y - q.Y, X: r.X - q.X, Height: r.Height - q.Height, Width: r.Width - q.Width}
}

// Empty reports whether r covers no cells.
func (r Region) Empty() bool {
	return r.Height <= 0 || r.Width <= 0
}

// Contains reports whether q lies entirely inside r. Both are expressed
// in the same coordinate space.
func (r Region) Contains(q Region) bool {
	return q.Y >= r.Y && q.X >= r.X &&
		q.Y+q.Height <= r.Y+r.Height &&
		q.X+q.Width <= r.X+r.Width
}

// Overlaps reports whether r and q share at least one cell.
func (r Region) Overlaps(q Region) bool {
	if r.Empty() || q.Empty() {
		return false
	}
	return r.Y < q.Y+q.Height && q.Y < r.Y+r.Height &&
		r.X < q.X+q.Width && q.X < r.X+r.Width
}

func (r Region) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Height, r.Width, r.Y, r.X)
}
