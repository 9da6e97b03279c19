// Package layout carves a panel's interior into widget sub-surfaces.
//
// A Layout collects placements with Add, computes concrete regions for
// the current window size in Bake, and hands out sub-surfaces with Carve.
// Placements are discarded by Reset.
package layout

import (
	"errors"

	"framed/internal/geom"
	"framed/internal/surface"
	"framed/internal/widget"
)

// ErrLayout is wrapped by invalid placements.
var ErrLayout = errors.New("layout")

// Layout is implemented by Fixed and Grid.
type Layout interface {
	Reset()
	SetWindowSize(size geom.Point)
	WindowSize() geom.Point
	// Bake computes the region of every placed widget for the current
	// window size and pushes the resulting size into the widget.
	Bake()
	// Region returns the baked region of w, relative to the window.
	Region(w widget.Widget) (geom.Region, bool)
	// Carve returns the sub-surface of parent baked for w. ok is false if
	// w was not baked or the sub-surface cannot be allocated.
	Carve(w widget.Widget, parent surface.Surface) (s surface.Surface, ok bool)
}

func carve(regions map[widget.Widget]geom.Region, w widget.Widget, parent surface.Surface) (surface.Surface, bool) {
	r, ok := regions[w]
	if !ok {
		return nil, false
	}
	s, err := parent.Carve(r)
	if err != nil {
		return nil, false
	}
	return s, true
}
