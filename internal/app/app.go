// Package app hosts a manager on a terminal: it owns the manager, creates
// panels for it and turns terminal events into arrange and refresh
// passes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	oteltrace "go.opentelemetry.io/otel/trace"

	"framed/internal/geom"
	"framed/internal/manager"
	"framed/internal/panel"
	"framed/internal/surface"
	"framed/internal/telemetry"
	"framed/internal/tree"
)

// ErrApp is wrapped by manager assignment errors.
var ErrApp = errors.New("app")

// App owns exactly one manager once one is assigned.
type App struct {
	backend   surface.Backend
	size      geom.Point
	manager   manager.Manager
	stack     *manager.Stack
	multiplex *manager.Multiplex
	focus     *manager.FocusRing
	tracer    oteltrace.Tracer
}

// Option configures an App.
type Option func(*App)

// WithTracer traces arrange and refresh passes with t.
func WithTracer(t oteltrace.Tracer) Option {
	return func(a *App) { a.tracer = t }
}

// New creates an App drawing through backend.
func New(backend surface.Backend, opts ...Option) *App {
	a := &App{
		backend: backend,
		size:    backend.Size(),
		focus:   manager.NewFocusRing(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.tracer == nil {
		a.tracer = (*telemetry.Exporter)(nil).Tracer()
	}
	return a
}

// Stack assigns and returns a stack manager.
func (a *App) Stack() (*manager.Stack, error) {
	if a.manager != nil {
		return nil, fmt.Errorf("%w: manager already assigned", ErrApp)
	}
	s, err := manager.NewStack(a.backend)
	if err != nil {
		return nil, err
	}
	a.stack, a.manager = s, s
	return s, nil
}

// Multiplex assigns and returns a multiplex manager.
func (a *App) Multiplex() (*manager.Multiplex, error) {
	if a.manager != nil {
		return nil, fmt.Errorf("%w: manager already assigned", ErrApp)
	}
	m, err := manager.NewMultiplex(a.backend)
	if err != nil {
		return nil, err
	}
	a.multiplex, a.manager = m, m
	return m, nil
}

// Manager returns the assigned manager, or nil.
func (a *App) Manager() manager.Manager { return a.manager }

// Size returns the screen size of the last arrangement.
func (a *App) Size() geom.Point { return a.size }

// NewPanel creates a screen-sized panel and adds it to the manager. path
// selects the split for a multiplex and is ignored by a stack.
func (a *App) NewPanel(path tree.Path, opts ...panel.Option) (*panel.Panel, error) {
	if a.manager == nil {
		return nil, fmt.Errorf("%w: no manager assigned", ErrApp)
	}
	p, err := panel.New(a.backend, geom.NewRegion(a.size, geom.Point{}), opts...)
	if err != nil {
		return nil, err
	}
	if a.stack != nil {
		err = a.stack.AddPanel(p)
	} else {
		err = a.multiplex.AddPanel(p, path)
	}
	if err != nil {
		return nil, err
	}
	a.focus.Order = append(a.focus.Order, len(a.manager.Panels())-1)
	return p, nil
}

func (a *App) managerName() string {
	if a.stack != nil {
		return "stack"
	}
	return "multiplex"
}

// Start arranges the manager for the current size and draws it.
func (a *App) Start(ctx context.Context) error {
	slog.Info("starting application", "size", a.size)
	if a.manager == nil {
		return nil
	}
	return a.Resize(ctx, a.size)
}

// Resize re-arranges the manager for a new screen size and redraws.
func (a *App) Resize(ctx context.Context, size geom.Point) error {
	a.size = size
	if a.manager == nil {
		return nil
	}
	ctx, span := telemetry.StartArrange(ctx, a.tracer, a.managerName(), size)
	defer span.End()
	a.manager.SetSize(size)
	return a.Refresh(ctx)
}

// Refresh redraws the manager without re-arranging it.
func (a *App) Refresh(ctx context.Context) error {
	if a.manager == nil {
		return nil
	}
	_, span := telemetry.StartRefresh(ctx, a.tracer, a.managerName(), len(a.manager.Panels()))
	defer span.End()
	if err := a.manager.Refresh(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// FocusNext moves focus to the next panel: a stack shows it, a
// multiplex highlights its borders.
func (a *App) FocusNext(ctx context.Context) error {
	a.syncFocus()
	return a.focusPanel(ctx, a.focus.Next())
}

// FocusPrev moves focus to the previous panel.
func (a *App) FocusPrev(ctx context.Context) error {
	a.syncFocus()
	return a.focusPanel(ctx, a.focus.Prev())
}

// Focused returns the index of the focused panel, or -1.
func (a *App) Focused() int {
	a.syncFocus()
	return a.focus.Current
}

// syncFocus follows active panel changes made on the stack directly.
func (a *App) syncFocus() {
	if a.stack != nil {
		a.focus.Current = a.stack.Active()
	}
}

func (a *App) focusPanel(ctx context.Context, i int) error {
	if i < 0 {
		return nil
	}
	switch {
	case a.stack != nil:
		// SetActivePanel redraws on its own once the stack is showing.
		return a.stack.SetActivePanel(i)
	case a.multiplex != nil:
		if err := a.multiplex.SetFocus(manager.PanelRef(i)); err != nil {
			return err
		}
		return a.Refresh(ctx)
	}
	return nil
}
