package surface

import (
	"fmt"

	"framed/internal/geom"
)

// Compositor is a Backend that keeps per-surface buffers and copies
// flushed cells to a Sink on Commit.
type Compositor struct {
	sink   Sink
	staged map[geom.Point]Cell
}

var _ Backend = (*Compositor)(nil)

// NewCompositor returns a Compositor presenting to sink.
func NewCompositor(sink Sink) *Compositor {
	return &Compositor{
		sink:   sink,
		staged: make(map[geom.Point]Cell),
	}
}

// Size returns the size of the underlying sink.
func (c *Compositor) Size() geom.Point {
	return c.sink.Size()
}

// NewSurface creates a top-level surface at r in screen coordinates.
func (c *Compositor) NewSurface(r geom.Region) (Surface, error) {
	if r.Height < 0 || r.Width < 0 {
		return nil, fmt.Errorf("%w: negative extent %s", ErrNoRegion, r)
	}
	return &window{
		comp:   c,
		region: r,
		cells:  newCells(r.Height, r.Width),
	}, nil
}

// Commit writes every cell staged since the previous commit to the sink
// and shows it. Later flushes of the same screen position win.
func (c *Compositor) Commit() error {
	size := c.sink.Size()
	for p, cell := range c.staged {
		if p.Y < 0 || p.X < 0 || p.Y >= size.Y || p.X >= size.X {
			continue
		}
		c.sink.SetCell(p.Y, p.X, cell)
	}
	clear(c.staged)
	return c.sink.Show()
}

// Pending returns the number of staged cells not yet committed.
func (c *Compositor) Pending() int {
	return len(c.staged)
}

func newCells(height, width int) []Cell {
	if height <= 0 || width <= 0 {
		return nil
	}
	cells := make([]Cell, height*width)
	for i := range cells {
		cells[i] = Blank
	}
	return cells
}

// window implements Surface. Top-level windows own cells; sub-windows
// write through to their root's buffer.
type window struct {
	comp   *Compositor
	parent *window
	region geom.Region
	cells  []Cell
}

func (w *window) root() *window {
	r := w
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// offset returns the position of w's top-left cell inside its root buffer.
func (w *window) offset() geom.Point {
	var off geom.Point
	for s := w; s.parent != nil; s = s.parent {
		off = off.Add(s.region.Origin())
	}
	return off
}

func (w *window) Region() geom.Region { return w.region }

func (w *window) Size() geom.Point { return w.region.Size() }

func (w *window) Resize(height, width int) error {
	if height < 0 || width < 0 {
		return fmt.Errorf("%w: negative extent %dx%d", ErrNoRegion, height, width)
	}
	if w.parent != nil {
		next := geom.Rect(w.region.Y, w.region.X, height, width)
		if !geom.Rect(0, 0, w.parent.region.Height, w.parent.region.Width).Contains(next) {
			return fmt.Errorf("%w: %s does not fit in parent", ErrNoRegion, next)
		}
		w.region = next
		return nil
	}

	cells := newCells(height, width)
	for y := 0; y < min(height, w.region.Height); y++ {
		for x := 0; x < min(width, w.region.Width); x++ {
			cells[y*width+x] = w.cells[y*w.region.Width+x]
		}
	}
	w.cells = cells
	w.region.Height = height
	w.region.Width = width
	return nil
}

func (w *window) Move(y, x int) error {
	if w.parent != nil {
		next := geom.Rect(y, x, w.region.Height, w.region.Width)
		if !geom.Rect(0, 0, w.parent.region.Height, w.parent.region.Width).Contains(next) {
			return fmt.Errorf("%w: %s does not fit in parent", ErrNoRegion, next)
		}
	}
	w.region.Y = y
	w.region.X = x
	return nil
}

func (w *window) Carve(r geom.Region) (Surface, error) {
	if r.Empty() {
		return nil, fmt.Errorf("%w: empty region %s", ErrNoRegion, r)
	}
	if !geom.Rect(0, 0, w.region.Height, w.region.Width).Contains(r) {
		return nil, fmt.Errorf("%w: %s does not fit in %s", ErrNoRegion, r, w.region.Size())
	}
	return &window{comp: w.comp, parent: w, region: r}, nil
}

// index maps a local coordinate to the root buffer, or -1 when clipped.
func (w *window) index(y, x int) int {
	if y < 0 || x < 0 || y >= w.region.Height || x >= w.region.Width {
		return -1
	}
	root := w.root()
	abs := w.offset().Add(geom.Pt(y, x))
	if abs.Y >= root.region.Height || abs.X >= root.region.Width {
		return -1
	}
	return abs.Y*root.region.Width + abs.X
}

func (w *window) Erase() {
	cells := w.root().cells
	for y := 0; y < w.region.Height; y++ {
		for x := 0; x < w.region.Width; x++ {
			if i := w.index(y, x); i >= 0 {
				cells[i] = Blank
			}
		}
	}
}

func (w *window) SetCell(y, x int, ch rune, st Style) {
	if i := w.index(y, x); i >= 0 {
		w.root().cells[i] = Cell{Rune: ch, Style: st}
	}
}

func (w *window) Print(y, x int, text string, st Style) int {
	n := 0
	for _, ch := range text {
		if x+n >= w.region.Width {
			break
		}
		w.SetCell(y, x+n, ch, st)
		n++
	}
	return n
}

func (w *window) Flush() {
	root := w.root()
	screen := root.region.Origin().Add(w.offset())
	for y := 0; y < w.region.Height; y++ {
		for x := 0; x < w.region.Width; x++ {
			if i := w.index(y, x); i >= 0 {
				w.comp.staged[screen.Add(geom.Pt(y, x))] = root.cells[i]
			}
		}
	}
}
