package state

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoSelection    = errors.New("no active selection")
	ErrEmptyClipboard = errors.New("clipboard is empty")
)

// Editor owns the grid, the marks and the undo log, and applies every edit the
// user makes. It is not safe for concurrent use; the UI drives it from its event
// thread.
type Editor struct {
	grid  *Grid
	marks *Marks
	undo  *UndoLog

	selection *Rect
	clipboard [][]string

	stroke    Stroke
	stroking  bool
	marking   bool
	markAdds  bool
	listeners []func(Change)

	log *logrus.Entry
}

func NewEditor(size, undoLimit int) *Editor {
	return &Editor{
		grid:  NewGrid(size),
		marks: NewMarks(),
		undo:  NewUndoLog(undoLimit),
		log:   logrus.WithField("component", "editor"),
	}
}

// Subscribe registers fn to receive every Change the editor makes.
func (e *Editor) Subscribe(fn func(Change)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Editor) emit(ch Change) {
	ch.Rev = nextRevision()
	for _, fn := range e.listeners {
		fn(ch)
	}
}

func (e *Editor) Grid() *Grid       { return e.grid }
func (e *Editor) Marks() *Marks     { return e.marks }
func (e *Editor) UndoLog() *UndoLog { return e.undo }
func (e *Editor) Size() int         { return e.grid.Size() }

// Selection returns the active selection, if any.
func (e *Editor) Selection() (Rect, bool) {
	if e.selection == nil {
		return Rect{}, false
	}
	return *e.selection, true
}

// Clipboard returns a copy of the clipboard block, nil when empty.
func (e *Editor) Clipboard() [][]string {
	return copyBlock(e.clipboard)
}

// BeginStroke opens a stroke; any stroke still open is committed first.
func (e *Editor) BeginStroke() {
	if e.stroking {
		e.EndStroke()
	}
	e.stroking = true
	e.stroke = nil
}

// Paint sets c to color, recording the previous colour in the open stroke.
// It reports whether the cell changed.
func (e *Editor) Paint(c Cell, color string) bool {
	hex, ok := NormalizeHex(color)
	if !ok {
		return false
	}
	prev, ok := e.grid.At(c)
	if !ok || prev == hex {
		return false
	}
	if !e.stroking {
		e.BeginStroke()
	}
	e.stroke = append(e.stroke, StrokeEntry{Cell: c, Prev: prev})
	e.grid.Set(c, hex)
	e.emit(Change{Cells: []Cell{c}})
	return true
}

// EndStroke closes the open stroke and appends it to the undo log unless empty.
func (e *Editor) EndStroke() bool {
	if !e.stroking {
		return false
	}
	e.stroking = false
	s := e.stroke
	e.stroke = nil
	if len(s) == 0 {
		return false
	}
	e.undo.Push(s)
	return true
}

// Undo reverts the most recent stroke. It reports false when there was nothing to undo.
func (e *Editor) Undo() bool {
	if e.stroking {
		e.EndStroke()
	}
	s, ok := e.undo.Pop()
	if !ok {
		return false
	}
	cells := make([]Cell, 0, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		e.grid.Set(s[i].Cell, s[i].Prev)
		cells = append(cells, s[i].Cell)
	}
	e.emit(Change{Cells: cells})
	return true
}

// BeginMark starts a mark drag at c. An unmarked first cell makes the whole
// drag add marks, a marked one makes it remove them.
func (e *Editor) BeginMark(c Cell) bool {
	if !e.grid.InBounds(c) {
		return false
	}
	e.marking = true
	e.markAdds = !e.marks.Has(c)
	e.MarkDrag(c)
	return true
}

// MarkDrag applies the current drag direction to c.
func (e *Editor) MarkDrag(c Cell) bool {
	if !e.marking || !e.grid.InBounds(c) {
		return false
	}
	var changed bool
	if e.markAdds {
		changed = e.marks.Add(c)
	} else {
		changed = e.marks.Remove(c)
	}
	if changed {
		e.emit(Change{Marks: []Cell{c}})
	}
	return changed
}

func (e *Editor) EndMark() {
	e.marking = false
}

// ToggleMark flips a single cell outside of any drag.
func (e *Editor) ToggleMark(c Cell) bool {
	if !e.grid.InBounds(c) {
		return false
	}
	if !e.marks.Remove(c) {
		e.marks.Add(c)
	}
	e.emit(Change{Marks: []Cell{c}})
	return true
}

// Select replaces any selection with the rectangle spanned by a and b, clipped
// to the grid. A rectangle entirely off the grid clears the selection.
func (e *Editor) Select(a, b Cell) bool {
	r, ok := NewRect(a, b).Clip(e.grid.Size())
	if !ok {
		e.Deselect()
		return false
	}
	e.selection = &r
	e.emit(Change{Selection: true})
	return true
}

func (e *Editor) Deselect() {
	if e.selection == nil {
		return
	}
	e.selection = nil
	e.emit(Change{Selection: true})
}

// Copy snapshots the selected block into the clipboard.
func (e *Editor) Copy() error {
	if e.selection == nil {
		return ErrNoSelection
	}
	r := *e.selection
	block := make([][]string, r.Height())
	for i := range block {
		block[i] = make([]string, r.Width())
		for j := range block[i] {
			block[i][j], _ = e.grid.At(Cell{Row: r.Top + i, Col: r.Left + j})
		}
	}
	e.clipboard = block
	e.log.WithField("rows", r.Height()).WithField("cols", r.Width()).Debug("copied selection")
	return nil
}

// Cut copies the selection, then resets it to the background colour as one
// undoable stroke holding only the cells that were not already background.
func (e *Editor) Cut() error {
	if err := e.Copy(); err != nil {
		return err
	}
	e.applyStroke(e.selection.Cells(), func(Cell) string { return Background })
	return nil
}

// Paste writes the clipboard with its top-left at anchor, clipped to the grid.
// It returns how many cells changed; nothing is recorded when that is zero.
func (e *Editor) Paste(anchor Cell) (int, error) {
	if len(e.clipboard) == 0 {
		return 0, ErrEmptyClipboard
	}
	if !e.grid.InBounds(anchor) {
		return 0, nil
	}
	block := e.clipboard
	target := Rect{
		Top:    anchor.Row,
		Left:   anchor.Col,
		Bottom: anchor.Row + len(block) - 1,
		Right:  anchor.Col + len(block[0]) - 1,
	}
	target, _ = target.Clip(e.grid.Size())
	n := e.applyStroke(target.Cells(), func(c Cell) string {
		return block[c.Row-anchor.Row][c.Col-anchor.Col]
	})
	return n, nil
}

// Clear resets every cell to the background colour as one undoable stroke.
func (e *Editor) Clear() int {
	all := Rect{Bottom: e.grid.Size() - 1, Right: e.grid.Size() - 1}
	return e.applyStroke(all.Cells(), func(Cell) string { return Background })
}

// applyStroke sets each cell to colorOf(cell) and records the cells that
// actually changed as a single stroke.
func (e *Editor) applyStroke(cells []Cell, colorOf func(Cell) string) int {
	if e.stroking {
		e.EndStroke()
	}
	var s Stroke
	changed := make([]Cell, 0, len(cells))
	for _, c := range cells {
		prev, ok := e.grid.At(c)
		if !ok {
			continue
		}
		next, ok := NormalizeHex(colorOf(c))
		if !ok || next == prev {
			continue
		}
		s = append(s, StrokeEntry{Cell: c, Prev: prev})
		e.grid.Set(c, next)
		changed = append(changed, c)
	}
	e.undo.Push(s)
	if len(changed) > 0 {
		e.emit(Change{Cells: changed})
	}
	return len(changed)
}

// Load swaps in a whole new grid and mark set. History, selection and any
// open drag are discarded; the clipboard survives.
func (e *Editor) Load(g *Grid, m *Marks) {
	if m == nil {
		m = NewMarks()
	}
	e.grid = g
	e.marks = m
	e.undo.Reset()
	e.selection = nil
	e.stroke = nil
	e.stroking = false
	e.marking = false
	e.log.WithField("size", g.Size()).WithField("marks", m.Len()).Info("loaded pattern")
	e.emit(Change{Full: true, Selection: true})
}

// ApplyCells sets colours without touching the undo log. Used to mirror a
// board that is edited elsewhere.
func (e *Editor) ApplyCells(updates []CellColor) {
	changed := make([]Cell, 0, len(updates))
	for _, u := range updates {
		if e.grid.Set(u.Cell, u.Color) {
			changed = append(changed, u.Cell)
		}
	}
	if len(changed) > 0 {
		e.emit(Change{Cells: changed})
	}
}

// SetMarks replaces the mark set without touching the undo log.
func (e *Editor) SetMarks(cells []Cell) {
	old := e.marks.Cells()
	e.marks = NewMarks()
	for _, c := range cells {
		if e.grid.InBounds(c) {
			e.marks.Add(c)
		}
	}
	e.emit(Change{Marks: append(old, e.marks.Cells()...)})
}

func copyBlock(b [][]string) [][]string {
	if b == nil {
		return nil
	}
	out := make([][]string, len(b))
	for i, row := range b {
		out[i] = append([]string(nil), row...)
	}
	return out
}
