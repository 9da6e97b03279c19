// Package palette defines the named styles widgets and decorations use.
package palette

import (
	"math/rand/v2"

	"framed/internal/surface"
)

// Theme colours (ANSI 256 indexes, lipgloss notation).
const (
	ColorAccent    = "86"  // Cyan/green - titles, focused borders
	ColorHighlight = "205" // Magenta - selection
	ColorMuted     = "241" // Gray - borders, hints
	ColorText      = "252" // Light gray - normal text
	ColorWhite     = "15"
	ColorRed       = "1"
	ColorBlue      = "4"
	ColorGreen     = "2"
)

var (
	Normal  = surface.Style{Fg: ColorText}
	Muted   = surface.Style{Fg: ColorMuted}
	Title   = surface.Style{Fg: ColorAccent, Bold: true}
	Focused = surface.Style{Fg: ColorAccent, Bold: true}
	Border  = surface.Style{Fg: ColorMuted}

	// Alert, Info and OK are the white-on-colour pairs used for panel
	// backgrounds in demos.
	Alert = surface.Style{Fg: ColorWhite, Bg: ColorRed}
	Info  = surface.Style{Fg: ColorWhite, Bg: ColorBlue}
	OK    = surface.Style{Fg: ColorWhite, Bg: ColorGreen}
)

var named = map[string]surface.Style{
	"normal": Normal,
	"muted":  Muted,
	"title":  Title,
	"alert":  Alert,
	"info":   Info,
	"ok":     OK,
}

// Lookup returns the style registered under name.
func Lookup(name string) (surface.Style, bool) {
	st, ok := named[name]
	return st, ok
}

// Random picks one of the colour pairs.
func Random() surface.Style {
	pairs := [...]surface.Style{Alert, Info, OK}
	return pairs[rand.IntN(len(pairs))]
}
