package manager

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"framed/internal/geom"
	"framed/internal/palette"
	"framed/internal/panel"
	"framed/internal/surface"
	"framed/internal/tree"
)

type border struct {
	region    geom.Region
	direction Direction
}

// Multiplex tiles panels according to a tree of proportional splits.
// Panels live in a flat table and splits refer to them by index.
type Multiplex struct {
	screen  screen
	splits  *tree.Tree[Split]
	panels  []*panel.Panel
	visible map[PanelRef]bool
	borders []border
	focus   PanelRef
}

var _ Manager = (*Multiplex)(nil)

// NewMultiplex creates a manager whose split tree is a single root
// covering the whole screen.
func NewMultiplex(backend surface.Backend) (*Multiplex, error) {
	s, err := newScreen(backend)
	if err != nil {
		return nil, fmt.Errorf("create multiplex screen: %w", err)
	}
	return &Multiplex{
		screen:  s,
		splits:  tree.New(Split{Portion: 1, Panel: NoPanel, Direction: Horizontal}),
		visible: make(map[PanelRef]bool),
		focus:   NoPanel,
	}, nil
}

// AddPanel shows p in the split at path. A panel the manager already
// owns may be added again once no split shows it, for example after its
// split was removed; it keeps its index.
func (m *Multiplex) AddPanel(p *panel.Panel, path tree.Path) error {
	ref := PanelRef(slices.Index(m.panels, p))
	if ref != NoPanel && m.placed(ref) {
		return fmt.Errorf("%w: cannot add panel to manager twice", ErrManager)
	}
	split, err := m.splits.Get(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrManager, err)
	}
	if split.Panel != NoPanel {
		return fmt.Errorf("%w: split %s already shows panel %d", ErrManager, path, split.Panel)
	}

	if ref == NoPanel {
		ref = PanelRef(len(m.panels))
		m.panels = append(m.panels, p)
	}
	split.Panel = ref
	if err := m.splits.Set(path, split); err != nil {
		return fmt.Errorf("%w: %w", ErrManager, err)
	}
	p.SetOwner(m)
	return nil
}

// placed reports whether any split shows the panel at ref.
func (m *Multiplex) placed(ref PanelRef) bool {
	for e := range m.splits.All() {
		if e.Value.Panel == ref {
			return true
		}
	}
	return false
}

// Split sets the direction of the split at path and gives it a new, empty
// child whose portion is 1/(n+1), n being the number of existing
// children. Existing children keep their portions. It returns the new
// child's path.
func (m *Multiplex) Split(path tree.Path, direction Direction) (tree.Path, error) {
	node, err := m.splits.Node(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManager, err)
	}
	node.Value.Direction = direction
	if err := m.splits.Set(path, node.Value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManager, err)
	}

	child := Split{
		Portion: 1 / float64(len(node.Children)+1),
		Panel:   NoPanel,
	}
	childPath, err := m.splits.Insert(path, child, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManager, err)
	}
	return childPath, nil
}

// Unsplit removes the leaf split at path. A panel it showed stays owned
// by the manager, unplaced until AddPanel puts it in another split.
func (m *Multiplex) Unsplit(path tree.Path) error {
	if err := m.splits.Remove(path, false); err != nil {
		return fmt.Errorf("%w: %w", ErrManager, err)
	}
	return nil
}

// SetPortion changes the share the split at path asks for. The root
// always covers the whole screen and cannot be changed.
func (m *Multiplex) SetPortion(path tree.Path, portion float64) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: the root portion is fixed", ErrManager)
	}
	if portion <= 0 || portion > 1 {
		return fmt.Errorf("%w: portion must be in (0, 1], got %g", ErrManager, portion)
	}
	split, err := m.splits.Get(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrManager, err)
	}
	split.Portion = portion
	return m.splits.Set(path, split)
}

// SplitAt returns the split at path.
func (m *Multiplex) SplitAt(path tree.Path) (Split, error) {
	split, err := m.splits.Get(path)
	if err != nil {
		return Split{}, fmt.Errorf("%w: %w", ErrManager, err)
	}
	return split, nil
}

// Splits walks the split tree depth-first.
func (m *Multiplex) Splits() iter.Seq[tree.Entry[Split]] {
	return m.splits.All()
}

func (m *Multiplex) Panels() []*panel.Panel { return slices.Clone(m.panels) }

// Visible returns the panels placed by the last arrangement, in table
// order.
func (m *Multiplex) Visible() []*panel.Panel {
	var out []*panel.Panel
	for i, p := range m.panels {
		if m.visible[PanelRef(i)] {
			out = append(out, p)
		}
	}
	return out
}

// Arrange recomputes every split region for a screen of the given size
// and rebuilds the visible set from scratch.
func (m *Multiplex) Arrange(size geom.Point) {
	m.screen.resize(size)
	m.visible = make(map[PanelRef]bool)
	m.borders = m.borders[:0]

	full := geom.NewRegion(size, geom.Point{})
	root, _ := m.splits.Get(tree.Path{})
	root.Region = full
	_ = m.splits.Set(tree.Path{}, root)
	m.place(root.Panel, full)
	m.arrange(tree.Path{}, full)

	slog.Debug("multiplex arranged", "size", size, "visible", len(m.visible), "panels", len(m.panels))
}

func (m *Multiplex) place(ref PanelRef, r geom.Region) {
	if ref == NoPanel || int(ref) >= len(m.panels) {
		return
	}
	p := m.panels[ref]
	size, origin := r.Decompose()
	p.SetSize(size)
	p.SetPosition(origin)
	m.visible[ref] = true
}

func (m *Multiplex) arrange(path tree.Path, region geom.Region) {
	node, err := m.splits.Node(path)
	if err != nil || node.Leaf() {
		return
	}
	n := len(node.Children)
	direction := node.Value.Direction

	total := region.Width
	if direction == Vertical {
		total = region.Height
	}
	available := total - (n - 1)
	if available < n {
		slog.Debug("split has no room", "path", path.String(), "available", available, "children", n)
		return
	}

	children := make([]Split, n)
	portions := make([]float64, n)
	for i, childPath := range node.Children {
		children[i], _ = m.splits.Get(childPath)
		portions[i] = children[i].Portion
	}
	sizes := Distribute(available, portions)

	cursor := region.X
	if direction == Vertical {
		cursor = region.Y
	}
	for i, childPath := range node.Children {
		var r geom.Region
		if direction == Horizontal {
			r = geom.Rect(region.Y, cursor, region.Height, sizes[i])
		} else {
			r = geom.Rect(cursor, region.X, sizes[i], region.Width)
		}
		cursor += sizes[i]
		if i < n-1 {
			if direction == Horizontal {
				m.borders = append(m.borders, border{geom.Rect(region.Y, cursor, region.Height, 1), direction})
			} else {
				m.borders = append(m.borders, border{geom.Rect(cursor, region.X, 1, region.Width), direction})
			}
			cursor++
		}

		child := children[i]
		child.Region = r
		_ = m.splits.Set(childPath, child)
		m.place(child.Panel, r)
		m.arrange(childPath, r)
	}
}

// Show renders every visible panel.
func (m *Multiplex) Show() error {
	for i, p := range m.panels {
		if !m.visible[PanelRef(i)] {
			continue
		}
		if err := p.Render(); err != nil {
			return err
		}
	}
	return nil
}

// Decorate draws a one-cell line in every gap between sibling splits.
// Lines next to the focused panel are highlighted.
func (m *Multiplex) Decorate() error {
	var focused geom.Region
	hasFocus := m.focus != NoPanel && m.visible[m.focus]
	if hasFocus {
		focused = m.panels[m.focus].Region()
		focused = geom.Rect(focused.Y-1, focused.X-1, focused.Height+2, focused.Width+2)
	}

	for _, b := range m.borders {
		line, err := m.screen.window.Carve(b.region)
		if err != nil {
			continue
		}
		style := palette.Border
		if hasFocus && focused.Overlaps(b.region) {
			style = palette.Focused
		}
		ch := '│'
		if b.direction == Vertical {
			ch = '─'
		}
		size := line.Size()
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				line.SetCell(y, x, ch, style)
			}
		}
		line.Flush()
	}
	return nil
}

func (m *Multiplex) Refresh() error { return refresh(m.screen, m) }

func (m *Multiplex) SetSize(size geom.Point) { m.Arrange(size) }

// RequestUpdate grants permission iff p was placed by the last
// arrangement.
func (m *Multiplex) RequestUpdate(p *panel.Panel) bool {
	i := slices.Index(m.panels, p)
	return i >= 0 && m.visible[PanelRef(i)]
}

// SetFocus highlights the borders around the panel at index i; NoPanel
// clears the highlight.
func (m *Multiplex) SetFocus(i PanelRef) error {
	if i != NoPanel && (i < 0 || int(i) >= len(m.panels)) {
		return fmt.Errorf("%w: focus index %d out of range", ErrManager, i)
	}
	m.focus = i
	return nil
}

// Focused returns the highlighted panel index, or NoPanel.
func (m *Multiplex) Focused() PanelRef { return m.focus }
