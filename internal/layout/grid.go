package layout

import (
	"fmt"
	"log/slog"

	"framed/internal/geom"
	"framed/internal/surface"
	"framed/internal/widget"
)

type gridCell struct {
	widget           widget.Widget
	row, col         int
	rowSpan, colSpan int
}

// Grid divides the window into equal rows and columns. The grid is as
// large as the placements require: one past the furthest occupied row
// and column, spans included.
type Grid struct {
	windowSize geom.Point
	cells      []gridCell
	occupied   map[geom.Point]bool
	widgets    map[widget.Widget]bool
	regions    map[widget.Widget]geom.Region
}

var _ Layout = (*Grid)(nil)

// NewGrid returns an empty grid layout.
func NewGrid() *Grid {
	return &Grid{
		occupied: make(map[geom.Point]bool),
		widgets:  make(map[widget.Widget]bool),
		regions:  make(map[widget.Widget]geom.Region),
	}
}

// Add places w at (row, col) spanning rowSpan rows and colSpan columns.
func (g *Grid) Add(w widget.Widget, row, col, rowSpan, colSpan int) error {
	switch {
	case rowSpan < 1:
		return fmt.Errorf("%w: row span must be at least 1, got %d", ErrLayout, rowSpan)
	case colSpan < 1:
		return fmt.Errorf("%w: column span must be at least 1, got %d", ErrLayout, colSpan)
	case row < 0 || col < 0:
		return fmt.Errorf("%w: row and column must not be negative, got (%d,%d)", ErrLayout, row, col)
	case g.widgets[w]:
		return fmt.Errorf("%w: cannot add widget to layout twice", ErrLayout)
	}
	for y := row; y < row+rowSpan; y++ {
		for x := col; x < col+colSpan; x++ {
			if g.occupied[geom.Pt(y, x)] {
				return fmt.Errorf("%w: cell (%d,%d) already holds a widget", ErrLayout, y, x)
			}
		}
	}
	g.cells = append(g.cells, gridCell{widget: w, row: row, col: col, rowSpan: rowSpan, colSpan: colSpan})
	for y := row; y < row+rowSpan; y++ {
		for x := col; x < col+colSpan; x++ {
			g.occupied[geom.Pt(y, x)] = true
		}
	}
	g.widgets[w] = true
	return nil
}

func (g *Grid) Reset() {
	g.cells = nil
	clear(g.occupied)
	clear(g.widgets)
	clear(g.regions)
}

func (g *Grid) SetWindowSize(size geom.Point) { g.windowSize = size }

func (g *Grid) WindowSize() geom.Point { return g.windowSize }

// Dims returns the number of rows and columns the current placements
// need.
func (g *Grid) Dims() (rows, cols int) {
	for _, c := range g.cells {
		rows = max(rows, c.row+c.rowSpan)
		cols = max(cols, c.col+c.colSpan)
	}
	return rows, cols
}

// Bake sizes each cell as floor(window*span/count) along both axes.
// Cells that come out empty are skipped, not placed.
func (g *Grid) Bake() {
	clear(g.regions)
	numRows, numCols := g.Dims()
	if numRows == 0 || numCols == 0 {
		return
	}
	h, w := g.windowSize.Y, g.windowSize.X
	for _, c := range g.cells {
		rowHeight := h * c.rowSpan / numRows
		colWidth := w * c.colSpan / numCols
		if rowHeight <= 0 || colWidth <= 0 {
			slog.Debug("grid cell has no room", "row", c.row, "col", c.col, "window", g.windowSize)
			continue
		}
		r := geom.Rect(h*c.row/numRows, w*c.col/numCols, rowHeight, colWidth)
		g.regions[c.widget] = r
		c.widget.SetSize(r.Size())
	}
}

func (g *Grid) Region(w widget.Widget) (geom.Region, bool) {
	r, ok := g.regions[w]
	return r, ok
}

func (g *Grid) Carve(w widget.Widget, parent surface.Surface) (surface.Surface, bool) {
	return carve(g.regions, w, parent)
}
