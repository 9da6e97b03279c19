// Package tcellscreen presents surfaces on a terminal through tcell.
package tcellscreen

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"framed/internal/geom"
	"framed/internal/surface"
)

// Screen adapts a tcell.Screen to surface.Sink.
type Screen struct {
	screen tcell.Screen
	styles map[surface.Style]tcell.Style
}

var _ surface.Sink = (*Screen)(nil)

// New wraps an initialised tcell screen.
func New(screen tcell.Screen) *Screen {
	return &Screen{
		screen: screen,
		styles: make(map[surface.Style]tcell.Style),
	}
}

// Tcell returns the wrapped screen.
func (s *Screen) Tcell() tcell.Screen {
	return s.screen
}

// Size implements surface.Sink.
func (s *Screen) Size() geom.Point {
	w, h := s.screen.Size()
	return geom.Pt(h, w)
}

// SetCell implements surface.Sink.
func (s *Screen) SetCell(y, x int, c surface.Cell) {
	s.screen.SetContent(x, y, c.Rune, nil, s.style(c.Style))
}

// Show implements surface.Sink.
func (s *Screen) Show() error {
	s.screen.Show()
	return nil
}

func (s *Screen) style(st surface.Style) tcell.Style {
	if cached, ok := s.styles[st]; ok {
		return cached
	}
	out := tcell.StyleDefault.
		Foreground(Color(st.Fg)).
		Background(Color(st.Bg)).
		Bold(st.Bold).
		Reverse(st.Reverse)
	s.styles[st] = out
	return out
}

// Color converts a lipgloss colour spec to a tcell colour. ANSI indexes
// map to the palette; anything else goes through tcell's name and hex
// lookup.
func Color(spec string) tcell.Color {
	if spec == "" {
		return tcell.ColorDefault
	}
	if n, err := strconv.Atoi(spec); err == nil && n >= 0 && n < 256 {
		return tcell.PaletteColor(n)
	}
	return tcell.GetColor(spec)
}
