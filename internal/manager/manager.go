// Package manager positions, sizes and shows panels at the top level.
//
// Where a layout carves widget sub-surfaces out of a panel, a manager
// works with panels that keep their own surfaces: it only pushes sizes
// and positions into them and decides which of them are visible, and so
// allowed to draw.
package manager

import (
	"errors"

	"framed/internal/geom"
	"framed/internal/panel"
	"framed/internal/surface"
)

// ErrManager is wrapped by invalid manager configuration.
var ErrManager = errors.New("manager")

// Manager is implemented by Stack and Multiplex.
type Manager interface {
	panel.Owner

	// Arrange fits every panel to a screen of the given size.
	Arrange(size geom.Point)
	// SetSize is called on terminal resize; it re-arranges.
	SetSize(size geom.Point)
	// Show renders every panel that should be visible.
	Show() error
	// Decorate draws whatever the manager puts around panels.
	Decorate() error
	// Refresh stages a blank background, then calls Show and Decorate,
	// then commits all staged output at once.
	Refresh() error
	Panels() []*panel.Panel
}

// screen is the full-size background surface shared by both managers.
type screen struct {
	backend surface.Backend
	window  surface.Surface
}

func newScreen(backend surface.Backend) (screen, error) {
	size := backend.Size()
	window, err := backend.NewSurface(geom.NewRegion(size, geom.Point{}))
	if err != nil {
		return screen{}, err
	}
	return screen{backend: backend, window: window}, nil
}

func (s screen) resize(size geom.Point) {
	// A top-level surface accepts any non-negative size.
	_ = s.window.Resize(max(size.Y, 0), max(size.X, 0))
}

func (s screen) background() {
	s.window.Erase()
	s.window.Flush()
}

func refresh(s screen, m Manager) error {
	s.background()
	if err := m.Show(); err != nil {
		return err
	}
	if err := m.Decorate(); err != nil {
		return err
	}
	return s.backend.Commit()
}
