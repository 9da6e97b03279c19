package manager

import (
	"fmt"
	"slices"

	"framed/internal/geom"
	"framed/internal/panel"
	"framed/internal/surface"
)

// Stack shows one full-screen panel at a time.
type Stack struct {
	screen  screen
	panels  []*panel.Panel
	active  int
	showing bool
}

var _ Manager = (*Stack)(nil)

// NewStack creates an empty stack with no active panel.
func NewStack(backend surface.Backend) (*Stack, error) {
	s, err := newScreen(backend)
	if err != nil {
		return nil, fmt.Errorf("create stack screen: %w", err)
	}
	return &Stack{screen: s, active: -1}, nil
}

// AddPanel appends p to the stack.
func (m *Stack) AddPanel(p *panel.Panel) error {
	if slices.Contains(m.panels, p) {
		return fmt.Errorf("%w: cannot add panel to manager twice", ErrManager)
	}
	m.panels = append(m.panels, p)
	p.SetOwner(m)
	return nil
}

// SetActivePanel selects the panel to show; -1 shows none. Once the
// stack has been shown, the switch is displayed immediately.
func (m *Stack) SetActivePanel(index int) error {
	if index < -1 || index >= len(m.panels) {
		return fmt.Errorf("%w: active index %d out of range [-1, %d)", ErrManager, index, len(m.panels))
	}
	m.active = index
	if m.showing {
		return m.Refresh()
	}
	return nil
}

// Active returns the index of the active panel, or -1.
func (m *Stack) Active() int { return m.active }

func (m *Stack) Panels() []*panel.Panel { return slices.Clone(m.panels) }

// Arrange gives every panel the full screen, shown or not.
func (m *Stack) Arrange(size geom.Point) {
	m.screen.resize(size)
	for _, p := range m.panels {
		p.SetSize(size)
	}
}

func (m *Stack) SetSize(size geom.Point) { m.Arrange(size) }

func (m *Stack) Show() error {
	m.showing = true
	if m.active == -1 {
		return nil
	}
	return m.panels[m.active].Render()
}

// Decorate draws nothing: stacked panels have no neighbours.
func (m *Stack) Decorate() error { return nil }

func (m *Stack) Refresh() error { return refresh(m.screen, m) }

// RequestUpdate grants permission to the active panel only.
func (m *Stack) RequestUpdate(p *panel.Panel) bool {
	return m.active >= 0 && slices.Index(m.panels, p) == m.active
}
