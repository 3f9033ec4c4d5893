package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KnitBoard/internal/state"
)

func TestPaletteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")
	p := state.NewPalette()
	p.SetColor(3, "#112233")
	p.PushRecent("#445566")
	require.NoError(t, SavePalette(path, p))

	got, err := LoadPalette(path)
	require.NoError(t, err)
	assert.Equal(t, p.Colors(), got.Colors())
	assert.Equal(t, []string{"#445566"}, got.Recent())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"recent_colors"`)
}

func TestLoadPaletteFallsBack(t *testing.T) {
	dir := t.TempDir()

	p, err := LoadPalette(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	assert.Equal(t, state.NewPalette().Colors(), p.Colors())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	p, err = LoadPalette(bad)
	assert.Error(t, err)
	assert.Equal(t, state.NewPalette().Colors(), p.Colors())
}

func TestLoadPaletteWithoutRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"colors": ["#000000", "#ff00ff"]}`), 0o644))

	p, err := LoadPalette(path)
	require.NoError(t, err)
	assert.Equal(t, "#000000", p.Color(0))
	assert.Equal(t, "#ff00ff", p.Color(1))
	assert.Equal(t, state.EmptySlot, p.Color(2))
	assert.Empty(t, p.Recent())
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.json")
	g := state.NewGrid(4)
	g.Set(state.Cell{Row: 1, Col: 2}, "#abcdef")
	m := state.NewMarks()
	m.Add(state.Cell{Row: 3, Col: 0})
	require.NoError(t, SaveProject(path, g, m))

	g2, m2, err := LoadProject(path, 4)
	require.NoError(t, err)
	assert.Equal(t, g.Rows(), g2.Rows())
	assert.Equal(t, m.Cells(), m2.Cells())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file renamed away")
}

func TestLoadProjectSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	big := state.NewGrid(6)
	big.Set(state.Cell{Row: 0, Col: 0}, "#010101")
	big.Set(state.Cell{Row: 5, Col: 5}, "#020202")
	m := state.NewMarks()
	m.Add(state.Cell{Row: 1, Col: 1})
	m.Add(state.Cell{Row: 5, Col: 5})
	path := filepath.Join(dir, "big.json")
	require.NoError(t, SaveProject(path, big, m))

	g, marks, err := LoadProject(path, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())
	got, _ := g.At(state.Cell{Row: 0, Col: 0})
	assert.Equal(t, "#010101", got)
	assert.Equal(t, []state.Cell{{Row: 1, Col: 1}}, marks.Cells())

	g, _, err = LoadProject(path, 8)
	require.NoError(t, err)
	got, _ = g.At(state.Cell{Row: 5, Col: 5})
	assert.Equal(t, "#020202", got)
	got, _ = g.At(state.Cell{Row: 7, Col: 7})
	assert.Equal(t, state.Background, got)
}

func TestLoadProjectFallsBack(t *testing.T) {
	dir := t.TempDir()
	g, m, err := LoadProject(filepath.Join(dir, "nope.json"), 5)
	assert.Error(t, err)
	assert.Equal(t, state.NewGrid(5).Rows(), g.Rows())
	assert.Zero(t, m.Len())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"grid_data": 7}`), 0o644))
	g, _, err = LoadProject(bad, 5)
	assert.Error(t, err)
	assert.Equal(t, 5, g.Size())
}

func TestRestoreSkipsInvalidCells(t *testing.T) {
	doc, err := DecodeProject(strings.NewReader(
		`{"grid_size": 2, "grid_data": [["#000000", "oops"], ["#111111"]], "marked_tiles": [[0, 1], [-1, 0]]}`))
	require.NoError(t, err)

	g, m := doc.Restore(2)
	assert.Equal(t, [][]string{{"#000000", state.Background}, {"#111111", state.Background}}, g.Rows())
	assert.Equal(t, []state.Cell{{Row: 0, Col: 1}}, m.Cells())
}
