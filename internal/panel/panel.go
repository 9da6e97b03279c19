// Package panel implements the top-level screen regions a manager
// arranges. A panel owns a surface, its widgets and one active layout,
// and re-lays itself out lazily: size and position changes only mark it
// invalid, and the next Render does the work.
package panel

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"framed/internal/geom"
	"framed/internal/layout"
	"framed/internal/surface"
	"framed/internal/widget"
)

// ErrPanel is wrapped by invalid widget operations on a panel.
var ErrPanel = errors.New("panel")

// Owner is the non-owning link from a panel to its manager.
type Owner interface {
	RequestUpdate(p *Panel) bool
}

// Arranger declares which widgets go into which layout at what placement.
// It runs each time an invalid panel is rendered, after the active layout
// has been reset.
type Arranger interface {
	Arrange(p *Panel) error
}

// ArrangeFunc adapts a function to Arranger.
type ArrangeFunc func(p *Panel) error

func (f ArrangeFunc) Arrange(p *Panel) error { return f(p) }

// Panel is a top-level region holding widgets.
type Panel struct {
	name     string
	window   surface.Surface
	widgets  []widget.Widget
	arranger Arranger

	active layout.Layout
	fixed  *layout.Fixed
	grid   *layout.Grid

	valid    bool
	size     geom.Point
	position geom.Point

	owner Owner
}

// Option configures a Panel.
type Option func(*Panel)

// WithName sets the name used in logs.
func WithName(name string) Option {
	return func(p *Panel) { p.name = name }
}

// WithArranger sets the content arrangement step.
func WithArranger(a Arranger) Option {
	return func(p *Panel) { p.arranger = a }
}

// New creates a panel covering region on backend. The panel starts
// invalid and with an empty fixed layout active.
func New(backend surface.Backend, region geom.Region, opts ...Option) (*Panel, error) {
	window, err := backend.NewSurface(region)
	if err != nil {
		return nil, fmt.Errorf("create panel surface: %w", err)
	}
	p := &Panel{
		window: window,
		fixed:  layout.NewFixed(),
		grid:   layout.NewGrid(),
	}
	p.active = p.fixed
	p.size, p.position = region.Decompose()
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Name returns the panel's name.
func (p *Panel) Name() string { return p.name }

// Size returns the size the panel will be laid out at.
func (p *Panel) Size() geom.Point { return p.size }

// Position returns the screen position of the panel's top-left corner.
func (p *Panel) Position() geom.Point { return p.position }

// Region returns size and position as one rectangle.
func (p *Panel) Region() geom.Region { return geom.NewRegion(p.size, p.position) }

// Valid reports whether the current layout matches size and position.
func (p *Panel) Valid() bool { return p.valid }

// Surface returns the panel's own surface.
func (p *Panel) Surface() surface.Surface { return p.window }

// Widgets returns the panel's widgets in the order they were added.
func (p *Panel) Widgets() []widget.Widget { return slices.Clone(p.widgets) }

// Layout returns the active layout.
func (p *Panel) Layout() layout.Layout { return p.active }

// SetSize changes the panel size and invalidates it, even if the size is
// unchanged.
func (p *Panel) SetSize(size geom.Point) {
	p.size = size
	p.valid = false
}

// SetPosition moves the panel and invalidates it, even if the position is
// unchanged.
func (p *Panel) SetPosition(position geom.Point) {
	p.position = position
	p.valid = false
}

// SetOwner links the panel to the manager that decides whether it may
// draw. A nil owner unlinks it.
func (p *Panel) SetOwner(o Owner) { p.owner = o }

// Add attaches w to the panel. The widget is placed by the arranger on
// the next re-layout.
func (p *Panel) Add(w widget.Widget) error {
	if slices.Contains(p.widgets, w) {
		return fmt.Errorf("%w: cannot add widget to panel twice", ErrPanel)
	}
	p.widgets = append(p.widgets, w)
	w.Adopt(p)
	return nil
}

// Fixed makes the fixed layout active, resets it and returns it.
func (p *Panel) Fixed() *layout.Fixed {
	p.fixed.Reset()
	p.active = p.fixed
	return p.fixed
}

// Grid makes the grid layout active, resets it and returns it.
func (p *Panel) Grid() *layout.Grid {
	p.grid.Reset()
	p.active = p.grid
	return p.grid
}

// RequestUpdate asks the owner whether the panel may draw now. Panels
// without an owner never may.
func (p *Panel) RequestUpdate() bool {
	if p.owner == nil {
		return false
	}
	return p.owner.RequestUpdate(p)
}

// Render draws the panel, re-laying it out first if it is invalid.
func (p *Panel) Render() error {
	if !p.valid {
		if err := p.revalidate(); err != nil {
			return err
		}
	}

	p.window.Erase()
	for _, w := range p.widgets {
		if !w.Windowed() {
			continue
		}
		if err := w.Render(); err != nil {
			return fmt.Errorf("render panel %q: %w", p.name, err)
		}
	}
	p.window.Flush()
	return nil
}

func (p *Panel) revalidate() error {
	if err := p.window.Resize(p.size.Y, p.size.X); err != nil {
		return fmt.Errorf("resize panel %q: %w", p.name, err)
	}
	if err := p.window.Move(p.position.Y, p.position.X); err != nil {
		return fmt.Errorf("move panel %q: %w", p.name, err)
	}

	p.active.Reset()
	if p.arranger != nil {
		if err := p.arranger.Arrange(p); err != nil {
			return fmt.Errorf("arrange panel %q: %w", p.name, err)
		}
	}
	p.active.SetWindowSize(p.size)
	p.active.Bake()

	for _, w := range p.widgets {
		w.Dewindow(false)
	}
	attached := 0
	for _, w := range p.widgets {
		s, ok := p.active.Carve(w, p.window)
		if !ok {
			continue
		}
		if err := w.Enwindow(s); err != nil {
			return err
		}
		attached++
	}

	p.valid = true
	slog.Debug("panel revalidated", "panel", p.name, "region", p.Region(), "widgets", len(p.widgets), "attached", attached)
	return nil
}
