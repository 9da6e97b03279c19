// Package config loads layout files describing a manager, its splits and
// the panels and labels it shows.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"framed/internal/manager"
	"framed/internal/palette"
	"framed/internal/surface"
)

// EnvPath names the layout file when no path is given on the command
// line.
const EnvPath = "FRAMED_CONFIG"

// ErrConfig is wrapped by every invalid layout file error.
var ErrConfig = errors.New("config")

// Manager kinds.
const (
	Stack     = "stack"
	Multiplex = "multiplex"
)

// Layout kinds.
const (
	Fixed = "fixed"
	Grid  = "grid"
)

// Layout is a decoded layout file.
type Layout struct {
	// Manager is "stack" or "multiplex" (the default).
	Manager string `toml:"manager"`
	// Active is the stack panel shown first; -1 shows none.
	Active int `toml:"active"`

	Splits []Split `toml:"split"`
	Panels []Panel `toml:"panel"`
}

// Split divides the split node at Path once more.
type Split struct {
	Path []int  `toml:"path"`
	Dir  string `toml:"direction"`

	// Portion overrides the new child's default share when set.
	Portion float64 `toml:"portion,omitempty"`
}

// Direction converts Dir to a manager direction. Dir must be valid.
func (s Split) Direction() manager.Direction {
	if strings.EqualFold(s.Dir, "vertical") {
		return manager.Vertical
	}
	return manager.Horizontal
}

// Panel is one panel and the labels it shows.
type Panel struct {
	Name string `toml:"name"`

	// Path is the multiplex split showing the panel. Ignored by stacks.
	Path   []int   `toml:"path"`
	Layout string  `toml:"layout"`
	Labels []Label `toml:"label"`
}

// Label is a text widget placed in a panel. Grid layouts use the row and
// column fields, fixed layouts use Y, X, Height and Width.
type Label struct {
	Text      string `toml:"text"`
	StyleName string `toml:"style"`
	Fill      bool   `toml:"fill"`

	Row     int `toml:"row"`
	Col     int `toml:"col"`
	RowSpan int `toml:"row_span"`
	ColSpan int `toml:"col_span"`

	Y      int `toml:"y"`
	X      int `toml:"x"`
	Height int `toml:"height"`
	Width  int `toml:"width"`
}

// Style resolves the label's style name. "random" picks one of the
// palette's colour pairs; empty means the normal text style.
func (l Label) Style() surface.Style {
	switch l.StyleName {
	case "":
		return palette.Normal
	case "random":
		return palette.Random()
	}
	st, _ := palette.Lookup(l.StyleName)
	return st
}

// Path returns flagPath, or the EnvPath variable when flagPath is empty.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvPath)
}

// Load reads and validates the layout file at path.
func Load(path string) (*Layout, error) {
	var l Layout
	md, err := toml.DecodeFile(path, &l)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrConfig, path, err)
	}
	if err := finish(&l, md); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &l, nil
}

// Parse decodes and validates a layout from TOML text.
func Parse(data string) (*Layout, error) {
	var l Layout
	md, err := toml.Decode(data, &l)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := finish(&l, md); err != nil {
		return nil, err
	}
	return &l, nil
}

func finish(l *Layout, md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrConfig, strings.Join(keys, ", "))
	}
	if !md.IsDefined("active") {
		l.Active = 0
		if len(l.Panels) == 0 {
			l.Active = -1
		}
	}
	l.defaults()
	return l.Validate()
}

func (l *Layout) defaults() {
	if l.Manager == "" {
		l.Manager = Multiplex
	}
	for i := range l.Panels {
		p := &l.Panels[i]
		if p.Layout == "" {
			p.Layout = Fixed
		}
		for j := range p.Labels {
			lb := &p.Labels[j]
			if lb.RowSpan == 0 {
				lb.RowSpan = 1
			}
			if lb.ColSpan == 0 {
				lb.ColSpan = 1
			}
			if lb.Height == 0 {
				lb.Height = 1
			}
			if lb.Width == 0 {
				lb.Width = max(len([]rune(lb.Text)), 1)
			}
		}
	}
}

// Validate checks the layout for values the engine would reject.
func (l *Layout) Validate() error {
	switch l.Manager {
	case Stack:
		if l.Active < -1 || l.Active >= len(l.Panels) {
			return fmt.Errorf("%w: active panel %d out of range [-1, %d)", ErrConfig, l.Active, len(l.Panels))
		}
		if len(l.Splits) > 0 {
			return fmt.Errorf("%w: a stack has no splits", ErrConfig)
		}
	case Multiplex:
	default:
		return fmt.Errorf("%w: unknown manager %q", ErrConfig, l.Manager)
	}

	for i, s := range l.Splits {
		if !strings.EqualFold(s.Dir, "horizontal") && !strings.EqualFold(s.Dir, "vertical") {
			return fmt.Errorf("%w: split %d: unknown direction %q", ErrConfig, i, s.Dir)
		}
		if s.Portion < 0 || s.Portion > 1 {
			return fmt.Errorf("%w: split %d: portion %g outside (0, 1]", ErrConfig, i, s.Portion)
		}
	}

	for i, p := range l.Panels {
		if p.Layout != Fixed && p.Layout != Grid {
			return fmt.Errorf("%w: panel %d: unknown layout %q", ErrConfig, i, p.Layout)
		}
		for j, lb := range p.Labels {
			if err := lb.validate(p.Layout); err != nil {
				return fmt.Errorf("%w: panel %d label %d: %w", ErrConfig, i, j, err)
			}
		}
	}
	return nil
}

func (l Label) validate(layout string) error {
	if l.StyleName != "" && l.StyleName != "random" {
		if _, ok := palette.Lookup(l.StyleName); !ok {
			return fmt.Errorf("unknown style %q", l.StyleName)
		}
	}
	if layout == Grid {
		if l.Row < 0 || l.Col < 0 || l.RowSpan < 1 || l.ColSpan < 1 {
			return fmt.Errorf("bad grid cell row=%d col=%d span=%dx%d", l.Row, l.Col, l.RowSpan, l.ColSpan)
		}
		return nil
	}
	if l.Y < 0 || l.X < 0 || l.Height < 1 || l.Width < 1 {
		return fmt.Errorf("bad placement %dx%d@(%d,%d)", l.Height, l.Width, l.Y, l.X)
	}
	return nil
}
