package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"framed/internal/geom"
)

// Canvas is an in-memory Sink. It holds the last presented frame, which
// String renders with lipgloss so it can be returned from a Bubble Tea
// View.
type Canvas struct {
	height, width int
	cells         []Cell
	frames        int
}

var _ Sink = (*Canvas)(nil)

// NewCanvas creates a blank canvas of the given size.
func NewCanvas(height, width int) *Canvas {
	return &Canvas{
		height: max(height, 0),
		width:  max(width, 0),
		cells:  newCells(height, width),
	}
}

// Resize changes the canvas size. Contents are cleared; the next commit
// repaints whatever is flushed.
func (c *Canvas) Resize(height, width int) {
	c.height = max(height, 0)
	c.width = max(width, 0)
	c.cells = newCells(height, width)
}

// Size implements Sink.
func (c *Canvas) Size() geom.Point {
	return geom.Pt(c.height, c.width)
}

// SetCell implements Sink.
func (c *Canvas) SetCell(y, x int, cell Cell) {
	if y < 0 || x < 0 || y >= c.height || x >= c.width {
		return
	}
	c.cells[y*c.width+x] = cell
}

// Show implements Sink. The canvas has nothing to flush; it only counts
// frames.
func (c *Canvas) Show() error {
	c.frames++
	return nil
}

// Frames returns how many times the canvas has been shown.
func (c *Canvas) Frames() int {
	return c.frames
}

// Cell returns the cell at (y, x), or Blank outside the canvas.
func (c *Canvas) Cell(y, x int) Cell {
	if y < 0 || x < 0 || y >= c.height || x >= c.width {
		return Blank
	}
	return c.cells[y*c.width+x]
}

// Line returns row y as plain text.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
		b.WriteRune(cell.Rune)
	}
	return b.String()
}

// Plain returns the whole canvas as unstyled text, one line per row.
func (c *Canvas) Plain() string {
	lines := make([]string, c.height)
	for y := range lines {
		lines[y] = c.Line(y)
	}
	return strings.Join(lines, "\n")
}

// String renders the canvas with styles applied. Runs of cells sharing a
// style are rendered together.
func (c *Canvas) String() string {
	lines := make([]string, c.height)
	for y := range lines {
		row := c.cells[y*c.width : (y+1)*c.width]
		var b, run strings.Builder
		var current Style
		emit := func() {
			if run.Len() == 0 {
				return
			}
			if current == (Style{}) {
				b.WriteString(run.String())
			} else {
				b.WriteString(Lipgloss(current).Render(run.String()))
			}
			run.Reset()
		}
		for _, cell := range row {
			if cell.Style != current {
				emit()
				current = cell.Style
			}
			run.WriteRune(cell.Rune)
		}
		emit()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Lipgloss converts st to the equivalent lipgloss style.
func Lipgloss(st Style) lipgloss.Style {
	out := lipgloss.NewStyle()
	if st.Fg != "" {
		out = out.Foreground(lipgloss.Color(st.Fg))
	}
	if st.Bg != "" {
		out = out.Background(lipgloss.Color(st.Bg))
	}
	if st.Bold {
		out = out.Bold(true)
	}
	if st.Reverse {
		out = out.Reverse(true)
	}
	return out
}
