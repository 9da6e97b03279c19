// Package surface defines the character-grid contract the arrangement
// engine draws through, and a Compositor that implements it on top of
// any device able to show cells (a Sink).
//
// Surfaces follow the curses model: top-level surfaces own a cell buffer
// and an absolute screen position; sub-surfaces are carved out of a
// parent, are positioned relative to it, and share its buffer. Flush
// stages a surface's cells for output and Commit presents everything
// staged since the last commit in one step.
package surface

import (
	"errors"

	"framed/internal/geom"
)

// ErrNoRegion is returned when a region cannot be allocated inside its
// parent (out of bounds or empty).
var ErrNoRegion = errors.New("surface: no region")

// Style describes how a cell is drawn. Colours use lipgloss notation: an
// ANSI index such as "205" or a hex value such as "#ff0000". The empty
// string means the terminal default.
type Style struct {
	Fg      string
	Bg      string
	Bold    bool
	Reverse bool
}

// Cell is one character position.
type Cell struct {
	Rune  rune
	Style Style
}

// Blank is what an erased cell holds.
var Blank = Cell{Rune: ' '}

// Surface is an addressable rectangle of cells.
type Surface interface {
	// Region returns the position and size. Top-level surfaces report
	// screen coordinates; sub-surfaces report coordinates relative to
	// their parent.
	Region() geom.Region
	Size() geom.Point
	Resize(height, width int) error
	Move(y, x int) error
	// Carve returns a sub-surface covering r, expressed relative to this
	// surface. It fails with ErrNoRegion if r does not fit.
	Carve(r geom.Region) (Surface, error)
	Erase()
	SetCell(y, x int, ch rune, st Style)
	// Print writes text left to right starting at (y, x), one rune per
	// cell, stopping at the right edge. It returns the number of cells
	// written.
	Print(y, x int, text string, st Style) int
	// Flush stages the surface's current contents for the next Commit.
	Flush()
}

// Backend creates top-level surfaces and presents staged output.
type Backend interface {
	NewSurface(r geom.Region) (Surface, error)
	Size() geom.Point
	Commit() error
}

// Sink is a device that can display cells: an in-memory Canvas or a real
// terminal screen.
type Sink interface {
	Size() geom.Point
	SetCell(y, x int, c Cell)
	Show() error
}
