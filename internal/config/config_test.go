package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framed/internal/manager"
	"framed/internal/palette"
)

const sample = `
manager = "multiplex"

[[split]]
path = []
direction = "vertical"

[[split]]
path = []
direction = "vertical"
portion = 0.5

[[panel]]
name = "top"
path = [0]
layout = "grid"

  [[panel.label]]
  text = "hello"
  style = "info"
  row = 0
  col = 0

  [[panel.label]]
  text = "wide"
  row = 1
  col = 0
  col_span = 2

[[panel]]
name = "bottom"
path = [1]

  [[panel.label]]
  text = "fixed"
  y = 1
  x = 2
`

func TestParse(t *testing.T) {
	l, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, Multiplex, l.Manager)
	require.Len(t, l.Splits, 2)
	assert.Equal(t, manager.Vertical, l.Splits[0].Direction())
	assert.Empty(t, l.Splits[0].Path)
	assert.Equal(t, 0.5, l.Splits[1].Portion)

	require.Len(t, l.Panels, 2)
	top := l.Panels[0]
	assert.Equal(t, "top", top.Name)
	assert.Equal(t, []int{0}, top.Path)
	assert.Equal(t, Grid, top.Layout)
	require.Len(t, top.Labels, 2)
	assert.Equal(t, palette.Info, top.Labels[0].Style())
	assert.Equal(t, 1, top.Labels[0].RowSpan)
	assert.Equal(t, 2, top.Labels[1].ColSpan)

	bottom := l.Panels[1]
	assert.Equal(t, Fixed, bottom.Layout, "fixed is the default layout")
	lb := bottom.Labels[0]
	assert.Equal(t, palette.Normal, lb.Style())
	assert.Equal(t, []int{1, 2, 1, 5}, []int{lb.Y, lb.X, lb.Height, lb.Width})
}

func TestParseDefaults(t *testing.T) {
	l, err := Parse(``)
	require.NoError(t, err)
	assert.Equal(t, Multiplex, l.Manager)
	assert.Equal(t, -1, l.Active)

	l, err = Parse("manager = \"stack\"\n[[panel]]\n[[panel]]\n")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Active)

	l, err = Parse("manager = \"stack\"\nactive = 1\n[[panel]]\n[[panel]]\n")
	require.NoError(t, err)
	assert.Equal(t, 1, l.Active)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `manager = `},
		{"unknown manager", `manager = "tabs"`},
		{"unknown key", `colour = "red"`},
		{"active out of range", "manager = \"stack\"\nactive = 2\n[[panel]]\n"},
		{"stack splits", "manager = \"stack\"\n[[split]]\npath = []\ndirection = \"horizontal\"\n"},
		{"bad direction", "[[split]]\npath = []\ndirection = \"diagonal\"\n"},
		{"bad portion", "[[split]]\npath = []\ndirection = \"vertical\"\nportion = 2.0\n"},
		{"bad layout", "[[panel]]\nlayout = \"flow\"\n"},
		{"bad style", "[[panel]]\n[[panel.label]]\ntext = \"x\"\nstyle = \"plaid\"\n"},
		{"negative row", "[[panel]]\nlayout = \"grid\"\n[[panel.label]]\nrow = -1\n"},
		{"negative x", "[[panel]]\n[[panel.label]]\nx = -3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, l.Panels, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "/from/env.toml")
	assert.Equal(t, "/from/flag.toml", Path("/from/flag.toml"))
	assert.Equal(t, "/from/env.toml", Path(""))

	t.Setenv(EnvPath, "")
	assert.Empty(t, Path(""))
}
