package app

import (
	"fmt"

	"framed/internal/config"
	"framed/internal/panel"
	"framed/internal/tree"
	"framed/internal/widget"
)

// Apply assigns the manager a layout file describes and builds its
// splits and panels.
func (a *App) Apply(l *config.Layout) error {
	if l.Manager == config.Stack {
		if _, err := a.Stack(); err != nil {
			return err
		}
	} else {
		m, err := a.Multiplex()
		if err != nil {
			return err
		}
		for i, s := range l.Splits {
			child, err := m.Split(tree.Path(s.Path), s.Direction())
			if err != nil {
				return fmt.Errorf("split %d: %w", i, err)
			}
			if s.Portion > 0 {
				if err := m.SetPortion(child, s.Portion); err != nil {
					return fmt.Errorf("split %d: %w", i, err)
				}
			}
		}
	}

	for i, pc := range l.Panels {
		if _, err := a.newConfiguredPanel(pc); err != nil {
			return fmt.Errorf("panel %d: %w", i, err)
		}
	}

	if a.stack != nil {
		return a.stack.SetActivePanel(l.Active)
	}
	return nil
}

func (a *App) newConfiguredPanel(pc config.Panel) (*panel.Panel, error) {
	labels := make([]*widget.Label, len(pc.Labels))
	for i, lc := range pc.Labels {
		labels[i] = widget.NewLabel(lc.Text).WithStyle(lc.Style()).WithFill(lc.Fill)
	}

	arrange := func(p *panel.Panel) error {
		if pc.Layout == config.Grid {
			g := p.Grid()
			for i, lc := range pc.Labels {
				if err := g.Add(labels[i], lc.Row, lc.Col, lc.RowSpan, lc.ColSpan); err != nil {
					return err
				}
			}
			return nil
		}
		f := p.Fixed()
		for i, lc := range pc.Labels {
			if err := f.Add(labels[i], lc.Y, lc.X, lc.Height, lc.Width); err != nil {
				return err
			}
		}
		return nil
	}

	p, err := a.NewPanel(tree.Path(pc.Path), panel.WithName(pc.Name), panel.WithArranger(panel.ArrangeFunc(arrange)))
	if err != nil {
		return nil, err
	}
	for _, l := range labels {
		if err := p.Add(l); err != nil {
			return nil, err
		}
	}
	return p, nil
}
