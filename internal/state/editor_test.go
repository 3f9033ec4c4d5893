package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paintStroke(e *Editor, color string, cells ...Cell) {
	e.BeginStroke()
	for _, c := range cells {
		e.Paint(c, color)
	}
	e.EndStroke()
}

func TestPaintAndUndo(t *testing.T) {
	e := NewEditor(4, 0)

	paintStroke(e, "#FF0000", Cell{0, 0})

	got, _ := e.Grid().At(Cell{0, 0})
	assert.Equal(t, "#ff0000", got)
	assert.Equal(t, 1, e.UndoLog().Len())

	require.True(t, e.Undo())
	got, _ = e.Grid().At(Cell{0, 0})
	assert.Equal(t, Background, got)
	assert.False(t, e.Undo(), "empty log")
}

func TestPaintSameColorIsNoop(t *testing.T) {
	e := NewEditor(4, 0)
	e.BeginStroke()
	assert.False(t, e.Paint(Cell{1, 1}, Background))
	assert.False(t, e.Paint(Cell{9, 9}, "#000000"), "out of range")
	assert.False(t, e.Paint(Cell{1, 1}, "nothex"))
	assert.False(t, e.EndStroke(), "empty stroke discarded")
	assert.Equal(t, 0, e.UndoLog().Len())
}

func TestUndoRestoresGridAfterManyStrokes(t *testing.T) {
	e := NewEditor(8, 0)
	before := e.Grid().Rows()

	paintStroke(e, "#111111", Cell{0, 0}, Cell{0, 1}, Cell{0, 2})
	paintStroke(e, "#222222", Cell{0, 1}, Cell{1, 1})
	paintStroke(e, "#333333", Cell{0, 1})
	paintStroke(e, "#111111", Cell{7, 7}, Cell{0, 0})

	for e.UndoLog().Len() > 0 {
		e.Undo()
	}
	assert.Equal(t, before, e.Grid().Rows())
}

func TestUndoLogEvictsOldest(t *testing.T) {
	e := NewEditor(16, 3)
	for i := 0; i < 5; i++ {
		paintStroke(e, "#00000"+string(rune('1'+i)), Cell{i, 0})
	}
	assert.Equal(t, 3, e.UndoLog().Len())

	for e.Undo() {
	}
	// The first two strokes were evicted, so their paint stays.
	got, _ := e.Grid().At(Cell{0, 0})
	assert.Equal(t, "#000001", got)
	got, _ = e.Grid().At(Cell{1, 0})
	assert.Equal(t, "#000002", got)
	got, _ = e.Grid().At(Cell{2, 0})
	assert.Equal(t, Background, got)
}

func TestMarkDragIsSingleDirection(t *testing.T) {
	e := NewEditor(4, 0)
	e.ToggleMark(Cell{0, 1})

	e.BeginMark(Cell{0, 0})
	e.MarkDrag(Cell{0, 1})
	e.MarkDrag(Cell{0, 2})
	e.EndMark()
	assert.True(t, e.Marks().Has(Cell{0, 0}))
	assert.True(t, e.Marks().Has(Cell{0, 1}), "adding drag never removes")
	assert.True(t, e.Marks().Has(Cell{0, 2}))

	e.ToggleMark(Cell{1, 1})
	e.BeginMark(Cell{0, 0})
	e.MarkDrag(Cell{1, 0})
	e.MarkDrag(Cell{0, 2})
	e.EndMark()
	assert.False(t, e.Marks().Has(Cell{0, 0}))
	assert.False(t, e.Marks().Has(Cell{1, 0}), "removing drag never adds")
	assert.False(t, e.Marks().Has(Cell{0, 2}))
	assert.True(t, e.Marks().Has(Cell{1, 1}))

	assert.False(t, e.MarkDrag(Cell{3, 3}), "no drag in progress")
	assert.Equal(t, 0, e.UndoLog().Len())
}

func TestSelectNormalizesAndReplaces(t *testing.T) {
	e := NewEditor(8, 0)
	require.True(t, e.Select(Cell{3, 5}, Cell{1, 2}))
	r, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, Rect{Top: 1, Left: 2, Bottom: 3, Right: 5}, r)

	e.Select(Cell{6, 6}, Cell{20, 20})
	r, _ = e.Selection()
	assert.Equal(t, Rect{Top: 6, Left: 6, Bottom: 7, Right: 7}, r)

	e.Deselect()
	_, ok = e.Selection()
	assert.False(t, ok)
	assert.ErrorIs(t, e.Copy(), ErrNoSelection)
}

func TestCopyPasteBlock(t *testing.T) {
	e := NewEditor(4, 0)
	paintStroke(e, "#ff0000", Cell{0, 0})
	paintStroke(e, "#00ff00", Cell{0, 1})
	paintStroke(e, "#0000ff", Cell{1, 0})
	paintStroke(e, "#ffff00", Cell{1, 1})

	e.Select(Cell{0, 0}, Cell{1, 1})
	require.NoError(t, e.Copy())
	n, err := e.Paste(Cell{2, 2})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	rows := e.Grid().Rows()
	assert.Equal(t, []string{"#ff0000", "#00ff00"}, rows[2][2:4])
	assert.Equal(t, []string{"#0000ff", "#ffff00"}, rows[3][2:4])

	// Clipboard survives a paste.
	assert.Len(t, e.Clipboard(), 2)
}

func TestPasteClipsToGrid(t *testing.T) {
	e := NewEditor(4, 0)
	paintStroke(e, "#123456", Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{1, 1})
	e.Select(Cell{0, 0}, Cell{1, 1})
	require.NoError(t, e.Copy())

	n, err := e.Paste(Cell{3, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	got, _ := e.Grid().At(Cell{3, 3})
	assert.Equal(t, "#123456", got)

	n, err = e.Paste(Cell{-1, 0})
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestPasteInPlaceRecordsNothing(t *testing.T) {
	e := NewEditor(4, 0)
	paintStroke(e, "#abcdef", Cell{0, 0})
	e.Select(Cell{0, 0}, Cell{1, 1})
	require.NoError(t, e.Copy())
	before := e.UndoLog().Len()

	n, err := e.Paste(Cell{0, 0})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, before, e.UndoLog().Len())
}

func TestPasteEmptyClipboard(t *testing.T) {
	e := NewEditor(4, 0)
	_, err := e.Paste(Cell{0, 0})
	assert.ErrorIs(t, err, ErrEmptyClipboard)
}

func TestCutThenUndo(t *testing.T) {
	e := NewEditor(4, 0)
	paintStroke(e, "#aa0000", Cell{0, 0})
	paintStroke(e, "#00aa00", Cell{1, 1})
	before := e.Grid().Rows()
	logLen := e.UndoLog().Len()

	e.Select(Cell{0, 0}, Cell{1, 1})
	require.NoError(t, e.Cut())
	assert.Equal(t, logLen+1, e.UndoLog().Len())

	stroke, ok := e.UndoLog().Pop()
	require.True(t, ok)
	assert.Len(t, stroke, 2, "only non-background cells are recorded")
	e.UndoLog().Push(stroke)

	rows := e.Grid().Rows()
	assert.Equal(t, Background, rows[0][0])
	assert.Equal(t, Background, rows[1][1])

	require.True(t, e.Undo())
	assert.Equal(t, before, e.Grid().Rows())
	assert.Equal(t, [][]string{{"#aa0000", Background}, {Background, "#00aa00"}}, e.Clipboard())
}

func TestClearIsOneStroke(t *testing.T) {
	e := NewEditor(4, 0)
	paintStroke(e, "#010203", Cell{0, 0}, Cell{3, 3})
	e.ToggleMark(Cell{2, 2})
	before := e.Grid().Rows()

	assert.Equal(t, 2, e.Clear())
	assert.Equal(t, NewGrid(4).Rows(), e.Grid().Rows())
	assert.True(t, e.Marks().Has(Cell{2, 2}))

	e.Undo()
	assert.Equal(t, before, e.Grid().Rows())
}

func TestChangeNotifications(t *testing.T) {
	e := NewEditor(4, 0)
	var got []Change
	e.Subscribe(func(ch Change) { got = append(got, ch) })

	paintStroke(e, "#ff0000", Cell{0, 0}, Cell{0, 0})
	e.ToggleMark(Cell{1, 1})
	e.Select(Cell{0, 0}, Cell{1, 1})
	e.Load(NewGrid(6), nil)

	require.Len(t, got, 4)
	assert.Equal(t, []Cell{{0, 0}}, got[0].Cells)
	assert.Equal(t, []Cell{{1, 1}}, got[1].Marks)
	assert.True(t, got[2].Selection)
	assert.True(t, got[3].Full)
	assert.Equal(t, 6, e.Size())
	assert.Less(t, got[0].Rev, got[3].Rev)
}

func TestApplyCellsSkipsUndo(t *testing.T) {
	e := NewEditor(4, 0)
	e.ApplyCells([]CellColor{
		{Cell: Cell{0, 0}, Color: "#101010"},
		{Cell: Cell{9, 9}, Color: "#101010"},
	})
	got, _ := e.Grid().At(Cell{0, 0})
	assert.Equal(t, "#101010", got)
	assert.Zero(t, e.UndoLog().Len())

	e.SetMarks([]Cell{{1, 1}, {7, 7}})
	assert.Equal(t, []Cell{{1, 1}}, e.Marks().Cells())
}
