package layout

import (
	"fmt"

	"framed/internal/geom"
	"framed/internal/surface"
	"framed/internal/widget"
)

// Fixed places widgets at absolute coordinates inside the window,
// clamping them to the window bounds when baked.
type Fixed struct {
	windowSize  geom.Point
	order       []widget.Widget
	positions   map[widget.Widget]geom.Region
	constrained map[widget.Widget]geom.Region
}

var _ Layout = (*Fixed)(nil)

// NewFixed returns an empty fixed layout.
func NewFixed() *Fixed {
	return &Fixed{
		positions:   make(map[widget.Widget]geom.Region),
		constrained: make(map[widget.Widget]geom.Region),
	}
}

// Add places w with its top-left corner at (y, x).
func (f *Fixed) Add(w widget.Widget, y, x, height, width int) error {
	if _, ok := f.positions[w]; ok {
		return fmt.Errorf("%w: cannot add widget to layout twice", ErrLayout)
	}
	if y < 0 || x < 0 {
		return fmt.Errorf("%w: y and x must not be negative, got (%d,%d)", ErrLayout, y, x)
	}
	if height < 1 || width < 1 {
		return fmt.Errorf("%w: height and width must be at least 1, got %dx%d", ErrLayout, height, width)
	}
	f.order = append(f.order, w)
	f.positions[w] = geom.Rect(y, x, height, width)
	return nil
}

func (f *Fixed) Reset() {
	f.order = nil
	clear(f.positions)
	clear(f.constrained)
}

func (f *Fixed) SetWindowSize(size geom.Point) { f.windowSize = size }

func (f *Fixed) WindowSize() geom.Point { return f.windowSize }

// Bake clamps every placement so it never extends past the last row or
// column of the window.
func (f *Fixed) Bake() {
	clear(f.constrained)
	maxY, maxX := f.windowSize.Y-1, f.windowSize.X-1
	if maxY < 0 || maxX < 0 {
		return
	}
	for _, w := range f.order {
		pos := f.positions[w]
		y := min(pos.Y, maxY)
		x := min(pos.X, maxX)
		endY := min(y+pos.Height-1, maxY)
		endX := min(x+pos.Width-1, maxX)
		r := geom.Rect(y, x, endY-y+1, endX-x+1)
		f.constrained[w] = r
		w.SetSize(r.Size())
	}
}

func (f *Fixed) Region(w widget.Widget) (geom.Region, bool) {
	r, ok := f.constrained[w]
	return r, ok
}

func (f *Fixed) Carve(w widget.Widget, parent surface.Surface) (surface.Surface, bool) {
	return carve(f.constrained, w, parent)
}
