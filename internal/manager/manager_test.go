package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framed/internal/geom"
	"framed/internal/panel"
	"framed/internal/surface"
	"framed/internal/tree"
	"framed/internal/widget"
)

func newBackend(height, width int) (*surface.Compositor, *surface.Canvas) {
	canvas := surface.NewCanvas(height, width)
	return surface.NewCompositor(canvas), canvas
}

// labelPanel returns a panel showing text in its top-left corner.
func labelPanel(t *testing.T, backend surface.Backend, text string) (*panel.Panel, *widget.Label) {
	t.Helper()
	label := widget.NewLabel(text)
	p, err := panel.New(backend, geom.Rect(0, 0, 1, 1), panel.WithName(text),
		panel.WithArranger(panel.ArrangeFunc(func(p *panel.Panel) error {
			return p.Fixed().Add(label, 0, 0, 1, len(text))
		})))
	require.NoError(t, err)
	require.NoError(t, p.Add(label))
	return p, label
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name      string
		available int
		portions  []float64
		want      []int
	}{
		{"equal thirds", 8, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, []int{3, 3, 2}},
		{"default split portions", 8, []float64{1, 1.0 / 2, 1.0 / 3}, []int{5, 2, 1}},
		{"halves", 10, []float64{0.5, 0.5}, []int{5, 5}},
		{"under-subscribed", 10, []float64{0.2, 0.2}, []int{5, 5}},
		{"under-subscribed uneven", 9, []float64{0.2, 0.5}, []int{3, 6}},
		{"minimum one cell", 3, []float64{0.98, 0.01, 0.01}, []int{1, 1, 1}},
		{"single child", 7, []float64{1}, []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distribute(tt.available, tt.portions))
		})
	}
}

func TestDistributeConservesSpace(t *testing.T) {
	portionSets := [][]float64{
		{1, 1, 1, 1},
		{0.1, 0.9},
		{0.9, 0.05, 0.05},
		{1, 0.5, 1.0 / 3, 0.25},
		{0.01, 0.01, 0.01},
	}
	for _, portions := range portionSets {
		for available := len(portions); available <= 40; available++ {
			sizes := Distribute(available, portions)
			sum := 0
			for _, s := range sizes {
				assert.GreaterOrEqual(t, s, 1)
				sum += s
			}
			assert.Equal(t, available, sum, "portions %v available %d", portions, available)
		}
	}
}

func TestMultiplexEqualThirds(t *testing.T) {
	comp, _ := newBackend(1, 10)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)

	var paths []tree.Path
	for range 3 {
		path, err := m.Split(tree.Path{}, Horizontal)
		require.NoError(t, err)
		paths = append(paths, path)
	}
	for _, path := range paths {
		require.NoError(t, m.SetPortion(path, 1.0/3))
	}

	m.Arrange(geom.Pt(1, 10))

	want := []geom.Region{
		geom.Rect(0, 0, 1, 3),
		geom.Rect(0, 4, 1, 3),
		geom.Rect(0, 8, 1, 2),
	}
	for i, path := range paths {
		split, err := m.SplitAt(path)
		require.NoError(t, err)
		assert.Equal(t, want[i], split.Region, "child %d", i)
	}
}

func TestMultiplexSplitPortions(t *testing.T) {
	comp, _ := newBackend(1, 10)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)

	for range 3 {
		_, err := m.Split(tree.Path{}, Horizontal)
		require.NoError(t, err)
	}

	var portions []float64
	for e := range m.Splits() {
		if len(e.Path) == 1 {
			portions = append(portions, e.Value.Portion)
		}
	}
	assert.InDeltaSlice(t, []float64{1, 1.0 / 2, 1.0 / 3}, portions, 1e-9)

	m.Arrange(geom.Pt(1, 10))
	widths := 0
	for e := range m.Splits() {
		if len(e.Path) == 1 {
			widths += e.Value.Region.Width
		}
	}
	assert.Equal(t, 10, widths+2, "children and borders cover the parent")
}

func TestMultiplexChildrenPartitionParent(t *testing.T) {
	comp, _ := newBackend(9, 20)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)

	left, err := m.Split(tree.Path{}, Vertical)
	require.NoError(t, err)
	_, err = m.Split(tree.Path{}, Vertical)
	require.NoError(t, err)
	for range 3 {
		_, err := m.Split(left, Horizontal)
		require.NoError(t, err)
	}

	m.Arrange(geom.Pt(9, 20))

	for e := range m.Splits() {
		node, err := m.splits.Node(e.Path)
		require.NoError(t, err)
		if node.Leaf() {
			continue
		}
		parent := e.Value.Region
		var prev geom.Region
		for i, childPath := range node.Children {
			child, err := m.SplitAt(childPath)
			require.NoError(t, err)
			assert.True(t, parent.Contains(child.Region), "%s inside %s", child.Region, parent)
			if i == 0 {
				prev = child.Region
				continue
			}
			if e.Value.Direction == Horizontal {
				assert.Equal(t, prev.X+prev.Width+1, child.Region.X, "one-cell gap")
			} else {
				assert.Equal(t, prev.Y+prev.Height+1, child.Region.Y, "one-cell gap")
			}
			assert.False(t, prev.Overlaps(child.Region))
			prev = child.Region
		}
	}
}

func TestMultiplexBailsOutWhenTooSmall(t *testing.T) {
	comp, _ := newBackend(1, 4)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)

	var panels []*panel.Panel
	for i := range 3 {
		path, err := m.Split(tree.Path{}, Horizontal)
		require.NoError(t, err)
		p, _ := labelPanel(t, comp, string(rune('a'+i)))
		require.NoError(t, m.AddPanel(p, path))
		panels = append(panels, p)
	}

	m.Arrange(geom.Pt(1, 5))
	assert.Equal(t, panels, m.Visible())
	before := make([]geom.Region, len(panels))
	for i, p := range panels {
		before[i] = p.Region()
	}

	// 4 columns minus 2 borders leaves 2 cells for 3 children.
	m.Arrange(geom.Pt(1, 4))
	assert.Empty(t, m.Visible())
	for i, p := range panels {
		assert.False(t, m.RequestUpdate(p))
		assert.Equal(t, before[i], p.Region(), "panel %d keeps its geometry", i)
	}
}

func TestMultiplexAddPanelErrors(t *testing.T) {
	comp, _ := newBackend(5, 5)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)
	p, _ := labelPanel(t, comp, "x")
	q, _ := labelPanel(t, comp, "y")

	require.NoError(t, m.AddPanel(p, tree.Path{}))
	assert.ErrorIs(t, m.AddPanel(p, tree.Path{}), ErrManager)
	assert.ErrorIs(t, m.AddPanel(q, tree.Path{}), ErrManager, "split already shows a panel")

	err = m.AddPanel(q, tree.Path{4})
	assert.ErrorIs(t, err, ErrManager)
	assert.ErrorIs(t, err, tree.ErrTree)
}

func TestMultiplexReAddAfterUnsplit(t *testing.T) {
	comp, _ := newBackend(1, 11)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)

	left, err := m.Split(tree.Path{}, Horizontal)
	require.NoError(t, err)
	right, err := m.Split(tree.Path{}, Horizontal)
	require.NoError(t, err)
	p, _ := labelPanel(t, comp, "p")
	q, _ := labelPanel(t, comp, "q")
	require.NoError(t, m.AddPanel(p, left))
	require.NoError(t, m.AddPanel(q, right))

	require.NoError(t, m.Unsplit(right))
	m.Arrange(geom.Pt(1, 11))
	assert.Equal(t, []*panel.Panel{p}, m.Visible())

	assert.ErrorIs(t, m.AddPanel(p, tree.Path{}), ErrManager, "p is still shown by a split")

	again, err := m.Split(tree.Path{}, Horizontal)
	require.NoError(t, err)
	require.NoError(t, m.AddPanel(q, again))
	assert.Len(t, m.Panels(), 2, "q keeps its index")

	m.Arrange(geom.Pt(1, 11))
	assert.Equal(t, []*panel.Panel{p, q}, m.Visible())
	assert.True(t, m.RequestUpdate(q))
}

func TestMultiplexSplitErrors(t *testing.T) {
	comp, _ := newBackend(5, 5)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)

	_, err = m.Split(tree.Path{2}, Horizontal)
	assert.ErrorIs(t, err, ErrManager)

	assert.ErrorIs(t, m.SetPortion(tree.Path{}, 0.5), ErrManager)

	child, err := m.Split(tree.Path{}, Vertical)
	require.NoError(t, err)
	assert.ErrorIs(t, m.SetPortion(child, 0), ErrManager)
	assert.ErrorIs(t, m.SetPortion(child, 1.5), ErrManager)
	assert.NoError(t, m.SetPortion(child, 1))

	_, err = m.Split(child, Horizontal)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Unsplit(child), ErrManager, "non-leaf")
	assert.ErrorIs(t, m.Unsplit(tree.Path{}), ErrManager, "root")
	assert.NoError(t, m.Unsplit(child.Child(0)))
	assert.NoError(t, m.Unsplit(child))
}

func TestMultiplexRefreshDrawsPanelsAndBorders(t *testing.T) {
	comp, canvas := newBackend(2, 11)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)

	left, err := m.Split(tree.Path{}, Horizontal)
	require.NoError(t, err)
	right, err := m.Split(tree.Path{}, Horizontal)
	require.NoError(t, err)
	require.NoError(t, m.SetPortion(left, 0.5))
	require.NoError(t, m.SetPortion(right, 0.5))

	lp, _ := labelPanel(t, comp, "left")
	rp, _ := labelPanel(t, comp, "right")
	require.NoError(t, m.AddPanel(lp, left))
	require.NoError(t, m.AddPanel(rp, right))

	m.SetSize(geom.Pt(2, 11))
	require.NoError(t, m.Refresh())

	assert.Equal(t, "left │right", canvas.Line(0))
	assert.Equal(t, "     │     ", canvas.Line(1))
	assert.Equal(t, 1, canvas.Frames())
	assert.Zero(t, comp.Pending())
}

func TestMultiplexFocusHighlightsBorder(t *testing.T) {
	comp, canvas := newBackend(1, 11)
	m, err := NewMultiplex(comp)
	require.NoError(t, err)

	left, err := m.Split(tree.Path{}, Horizontal)
	require.NoError(t, err)
	_, err = m.Split(tree.Path{}, Horizontal)
	require.NoError(t, err)
	p, _ := labelPanel(t, comp, "x")
	require.NoError(t, m.AddPanel(p, left))

	m.Arrange(geom.Pt(1, 11))
	require.NoError(t, m.Refresh())
	border := canvas.Cell(0, m.Visible()[0].Region().Width)
	assert.Equal(t, '│', border.Rune)
	assert.False(t, border.Style.Bold)

	require.NoError(t, m.SetFocus(0))
	assert.Equal(t, PanelRef(0), m.Focused())
	require.NoError(t, m.Refresh())
	border = canvas.Cell(0, m.Visible()[0].Region().Width)
	assert.True(t, border.Style.Bold)

	assert.ErrorIs(t, m.SetFocus(3), ErrManager)
}

func TestStackShowsOnlyActivePanel(t *testing.T) {
	comp, canvas := newBackend(1, 6)
	s, err := NewStack(comp)
	require.NoError(t, err)

	first, _ := labelPanel(t, comp, "first")
	second, _ := labelPanel(t, comp, "second")
	require.NoError(t, s.AddPanel(first))
	require.NoError(t, s.AddPanel(second))
	assert.Equal(t, -1, s.Active())

	require.NoError(t, s.SetActivePanel(1))
	assert.Zero(t, canvas.Frames(), "not shown yet")

	s.SetSize(geom.Pt(1, 6))
	require.NoError(t, s.Refresh())
	assert.Equal(t, "second", canvas.Line(0))
	assert.True(t, s.RequestUpdate(second))
	assert.False(t, s.RequestUpdate(first))

	require.NoError(t, s.SetActivePanel(0))
	assert.Equal(t, 2, canvas.Frames(), "switch refreshes once shown")
	assert.Equal(t, "first ", canvas.Line(0))

	require.NoError(t, s.SetActivePanel(-1))
	assert.Equal(t, "      ", canvas.Line(0))
}

func TestStackErrors(t *testing.T) {
	comp, _ := newBackend(1, 6)
	s, err := NewStack(comp)
	require.NoError(t, err)
	p, _ := labelPanel(t, comp, "p")

	require.NoError(t, s.AddPanel(p))
	assert.ErrorIs(t, s.AddPanel(p), ErrManager)
	assert.ErrorIs(t, s.SetActivePanel(1), ErrManager)
	assert.ErrorIs(t, s.SetActivePanel(-2), ErrManager)
}

func TestStackArrangeSizesEveryPanel(t *testing.T) {
	comp, _ := newBackend(4, 9)
	s, err := NewStack(comp)
	require.NoError(t, err)
	a, _ := labelPanel(t, comp, "a")
	b, _ := labelPanel(t, comp, "b")
	require.NoError(t, s.AddPanel(a))
	require.NoError(t, s.AddPanel(b))

	s.Arrange(geom.Pt(4, 9))
	assert.Equal(t, geom.Pt(4, 9), a.Size())
	assert.Equal(t, geom.Pt(4, 9), b.Size())
	assert.Len(t, s.Panels(), 2)
}

func TestLabelRepaintsOnlyWhenPermitted(t *testing.T) {
	comp, canvas := newBackend(1, 6)
	s, err := NewStack(comp)
	require.NoError(t, err)
	a, la := labelPanel(t, comp, "aaaa")
	b, lb := labelPanel(t, comp, "bbbb")
	require.NoError(t, s.AddPanel(a))
	require.NoError(t, s.AddPanel(b))
	require.NoError(t, s.SetActivePanel(0))
	s.SetSize(geom.Pt(1, 6))
	require.NoError(t, s.Refresh())

	painted, err := lb.SetText("zzzz")
	require.NoError(t, err)
	assert.False(t, painted, "hidden panel may not draw")

	painted, err = la.SetText("cccc")
	require.NoError(t, err)
	assert.True(t, painted)
	require.NoError(t, comp.Commit())
	assert.Equal(t, "cccc  ", canvas.Line(0))
}

func TestFocusRing(t *testing.T) {
	var moves [][2]int
	f := NewFocusRing(0, 2, 5)
	f.OnChange = func(from, to int) { moves = append(moves, [2]int{from, to}) }

	assert.Equal(t, 0, f.Next())
	assert.Equal(t, 2, f.Next())
	assert.Equal(t, 5, f.Next())
	assert.Equal(t, 0, f.Next())
	assert.Equal(t, 5, f.Prev())
	assert.True(t, f.Set(2))
	assert.False(t, f.Set(7))
	assert.Equal(t, 2, f.Current)
	assert.Equal(t, [][2]int{{-1, 0}, {0, 2}, {2, 5}, {5, 0}, {0, 5}, {5, 2}}, moves)

	empty := NewFocusRing()
	assert.Equal(t, -1, empty.Next())
	assert.Equal(t, -1, empty.Prev())
}
