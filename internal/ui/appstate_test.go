package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"KnitBoard/internal/share"
	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
)

func TestPasteAnchor(t *testing.T) {
	st := NewAppState(nil)
	sel := state.Rect{Top: 2, Left: 3, Bottom: 4, Right: 5}

	assert.Equal(t, state.Cell{}, st.PasteAnchor(state.Rect{}, false))
	assert.Equal(t, state.Cell{Row: 2, Col: 3}, st.PasteAnchor(sel, true))

	st.SetHover(state.Cell{Row: 1, Col: 1}, true)
	assert.Equal(t, state.Cell{Row: 1, Col: 1}, st.PasteAnchor(sel, true))
}

func TestToolToggleAndColor(t *testing.T) {
	st := NewAppState(nil)
	assert.Equal(t, ToolMark, st.ToggleTool())
	assert.Equal(t, ToolPaint, st.ToggleTool())

	st.Palette.SetColor(4, "#123456")
	st.Select(4)
	assert.Equal(t, "#123456", st.Color())
	st.Select(40)
	assert.Equal(t, 4, st.Selected)
}

func TestApplyRemote(t *testing.T) {
	ed := state.NewEditor(2, 0)
	src := state.NewGrid(3)
	src.Set(state.Cell{Row: 2, Col: 2}, "#0f0f0f")
	doc := store.Snapshot(src, nil)

	applyRemote(ed, share.Message{Type: share.TypeSnapshot, Project: &doc})
	assert.Equal(t, 3, ed.Size(), "viewer adopts the host's grid size")

	applyRemote(ed, share.Message{Type: share.TypeCells, Cells: []state.CellColor{
		{Cell: state.Cell{Row: 0, Col: 0}, Color: "#aaaaaa"},
	}})
	got, _ := ed.Grid().At(state.Cell{})
	assert.Equal(t, "#aaaaaa", got)

	applyRemote(ed, share.Message{Type: share.TypeMarks, Marks: [][2]int{{1, 2}}})
	assert.True(t, ed.Marks().Has(state.Cell{Row: 1, Col: 2}))

	applyRemote(ed, share.Message{Type: share.TypeSnapshot})
	assert.Equal(t, 3, ed.Size(), "snapshot without a project is ignored")

	huge := store.ProjectDoc{GridSize: 4000, GridData: [][]string{{"#000000"}}}
	applyRemote(ed, share.Message{Type: share.TypeSnapshot, Project: &huge})
	assert.Equal(t, 3, ed.Size(), "oversized snapshot is ignored")
	assert.True(t, ed.Marks().Has(state.Cell{Row: 1, Col: 2}), "current state kept")

	rows := make([][]string, state.MaxGridSize+1)
	applyRemote(ed, share.Message{Type: share.TypeSnapshot, Project: &store.ProjectDoc{GridData: rows}})
	assert.Equal(t, 3, ed.Size(), "size inferred from rows is bounded too")
	assert.Zero(t, ed.UndoLog().Len())
}

func TestHexColor(t *testing.T) {
	c := hexColor("#3a6ea5")
	assert.Equal(t, uint8(0x3a), c.R)
	assert.Equal(t, uint8(0xa5), c.B)
	assert.Equal(t, uint8(0xff), hexColor("bogus").G)
}
