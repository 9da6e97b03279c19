package app

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"framed/internal/geom"
)

// RunScreen draws on screen and handles its events until Ctrl-C, Escape
// or q. The App's backend must present to the same screen. The caller
// owns screen and finalises it.
func (a *App) RunScreen(ctx context.Context, screen tcell.Screen) error {
	w, h := screen.Size()
	a.size = geom.Pt(h, w)
	if err := a.Start(ctx); err != nil {
		return err
	}

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			w, h := ev.Size()
			screen.Sync()
			if err := a.Resize(ctx, geom.Pt(h, w)); err != nil {
				return err
			}
		case *tcell.EventKey:
			var err error
			switch {
			case ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape:
				return nil
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyTab:
				err = a.FocusNext(ctx)
			case ev.Key() == tcell.KeyBacktab:
				err = a.FocusPrev(ctx)
			}
			if err != nil {
				return err
			}
		default:
			slog.Debug("ignoring event", "event", ev)
		}
	}
}
