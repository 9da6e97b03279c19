package widget

import (
	"strings"

	"framed/internal/surface"
)

// Label shows static text, one line per row, truncated to its surface.
type Label struct {
	Base
	text  string
	style surface.Style
	fill  bool
}

var _ Widget = (*Label)(nil)

// NewLabel creates a label with the given text.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// WithStyle sets the style used for text, and for the background when
// filling.
func (l *Label) WithStyle(st surface.Style) *Label {
	l.style = st
	return l
}

// WithFill makes the label paint its whole surface in its style, not just
// the cells covered by text.
func (l *Label) WithFill(fill bool) *Label {
	l.fill = fill
	return l
}

// Text returns the current text.
func (l *Label) Text() string {
	return l.text
}

// SetText replaces the text and repaints immediately if allowed. It
// reports whether the label was repainted.
func (l *Label) SetText(text string) (bool, error) {
	if text == l.text {
		return false, nil
	}
	l.text = text
	return Repaint(l)
}

// Render implements Widget.
func (l *Label) Render() error {
	win, err := l.Window()
	if err != nil {
		return err
	}
	size := win.Size()
	if l.fill {
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				win.SetCell(y, x, ' ', l.style)
			}
		}
	}
	for y, line := range strings.Split(l.text, "\n") {
		if y >= size.Y {
			break
		}
		win.Print(y, 0, line, l.style)
	}
	return nil
}
