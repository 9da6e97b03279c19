// Package widget defines the leaf renderables panels lay out, and the
// attach/detach protocol that binds them to carved sub-surfaces.
package widget

import (
	"errors"
	"fmt"

	"framed/internal/geom"
	"framed/internal/surface"
)

// ErrWidget is wrapped by attach/detach protocol violations.
var ErrWidget = errors.New("widget")

// Parent is the non-owning link from a widget back to whatever holds it.
// It is only used to ask whether drawing is currently permitted.
type Parent interface {
	RequestUpdate() bool
}

// Widget is something a panel can place and draw.
type Widget interface {
	// Render draws the widget from a blank slate into its surface.
	Render() error

	Enwindow(s surface.Surface) error
	Dewindow(erase bool)
	Windowed() bool
	Window() (surface.Surface, error)

	Size() geom.Point
	SetSize(size geom.Point)

	Adopt(p Parent)
	Orphan()
	RequestUpdate() bool
}

// Base implements everything in Widget except Render. Concrete widgets
// embed it.
type Base struct {
	window surface.Surface
	size   geom.Point
	parent Parent
}

// Enwindow attaches s. Attaching an already attached widget is an error.
func (b *Base) Enwindow(s surface.Surface) error {
	if b.window != nil {
		return fmt.Errorf("%w: widget is already windowed", ErrWidget)
	}
	b.window = s
	return nil
}

// Dewindow detaches the current surface, optionally erasing and staging
// it first. Detaching an unattached widget does nothing.
func (b *Base) Dewindow(erase bool) {
	if b.window == nil {
		return
	}
	if erase {
		b.window.Erase()
		b.window.Flush()
	}
	b.window = nil
}

// Windowed reports whether a surface is attached.
func (b *Base) Windowed() bool {
	return b.window != nil
}

// Window returns the attached surface.
func (b *Base) Window() (surface.Surface, error) {
	if b.window == nil {
		return nil, fmt.Errorf("%w: widget is not windowed", ErrWidget)
	}
	return b.window, nil
}

func (b *Base) Size() geom.Point { return b.size }

func (b *Base) SetSize(size geom.Point) { b.size = size }

func (b *Base) Adopt(p Parent) { b.parent = p }

func (b *Base) Orphan() { b.parent = nil }

// RequestUpdate asks the parent chain for permission to draw. Widgets
// without a parent never draw on their own.
func (b *Base) RequestUpdate() bool {
	if b.parent == nil {
		return false
	}
	return b.parent.RequestUpdate()
}

// Repaint redraws w in place: erase, render, stage. It does nothing and
// returns false unless w is attached and its parent grants an update.
// Widgets call it after a state change that affects what they show.
func Repaint(w Widget) (bool, error) {
	if !w.Windowed() || !w.RequestUpdate() {
		return false, nil
	}
	win, err := w.Window()
	if err != nil {
		return false, err
	}
	win.Erase()
	if err := w.Render(); err != nil {
		return false, err
	}
	win.Flush()
	return true, nil
}
