package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"framed/internal/geom"
	"framed/internal/surface"
)

// Ensure teaModel can be used as tea.Model.
var _ tea.Model = (*teaModel)(nil)

// teaModel adapts an App drawing into a Canvas to Bubble Tea. The last
// terminal row holds the help line.
type teaModel struct {
	app    *App
	canvas *surface.Canvas
	keys   keyMap
	help   help.Model
	err    error
}

// AsTeaModel returns a Bubble Tea model driving a. The App's backend must
// be a Compositor presenting to canvas.
func (a *App) AsTeaModel(canvas *surface.Canvas) tea.Model {
	return &teaModel{
		app:    a,
		canvas: canvas,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Init implements tea.Model. Drawing waits for the first window size.
func (m *teaModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		size := geom.Pt(max(msg.Height-1, 0), msg.Width)
		m.canvas.Resize(size.Y, size.X)
		return m, m.check(m.app.Resize(ctx, size))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.check(m.app.FocusNext(ctx))
		case key.Matches(msg, m.keys.Prev):
			return m, m.check(m.app.FocusPrev(ctx))
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}
	return m, nil
}

// check records err and stops the program when it is non-nil.
func (m *teaModel) check(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	slog.Error("update failed", "err", err)
	m.err = err
	return tea.Quit
}

// View implements tea.Model.
func (m *teaModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	return m.canvas.String() + "\n" + m.help.View(m.keys)
}

// RunTea runs a Bubble Tea program on the alternate screen until the user
// quits.
func (a *App) RunTea(canvas *surface.Canvas, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(a.AsTeaModel(canvas), opts...).Run()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	if m, ok := final.(*teaModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
