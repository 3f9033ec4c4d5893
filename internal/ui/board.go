package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"KnitBoard/internal/state"
)

// Board draws the pattern grid and turns pointer input into editor calls.
// The primary button paints (or marks), the secondary button selects and the
// wheel zooms.
type Board struct {
	widget.BaseWidget
	editor *state.Editor
	zoom   *state.Zoom
	state  *AppState

	readOnly      bool
	primaryDown   bool
	secondaryDown bool
	selectFrom    state.Cell

	renderer *boardRenderer

	OnZoom func(percent int)
}

var _ fyne.Widget = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)
var _ desktop.Hoverable = (*Board)(nil)
var _ fyne.Scrollable = (*Board)(nil)

func NewBoard(ed *state.Editor, zoom *state.Zoom, st *AppState) *Board {
	b := &Board{editor: ed, zoom: zoom, state: st}
	b.ExtendBaseWidget(b)
	ed.Subscribe(b.apply)
	return b
}

// SetReadOnly stops the board from editing; selection still works.
func (b *Board) SetReadOnly(ro bool) {
	b.readOnly = ro
}

func (b *Board) apply(ch state.Change) {
	if b.renderer == nil {
		return
	}
	b.renderer.apply(ch)
}

func (b *Board) cellAt(pos fyne.Position) (state.Cell, bool) {
	return b.zoom.CellAt(pos.X, pos.Y, b.editor.Size())
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	cell, ok := b.cellAt(e.Position)
	switch e.Button {
	case desktop.MouseButtonPrimary:
		if b.readOnly {
			return
		}
		b.finishPrimary()
		b.primaryDown = true
		if b.state.Tool == ToolMark {
			b.editor.BeginMark(cell)
			return
		}
		b.editor.BeginStroke()
		if ok {
			b.editor.Paint(cell, b.state.Color())
		}
	case desktop.MouseButtonSecondary:
		if !ok {
			return
		}
		b.secondaryDown = true
		b.selectFrom = cell
		b.editor.Select(cell, cell)
	}
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	switch e.Button {
	case desktop.MouseButtonPrimary:
		b.finishPrimary()
	case desktop.MouseButtonSecondary:
		b.secondaryDown = false
	}
}

// finishPrimary closes whatever the primary button started.
func (b *Board) finishPrimary() {
	if !b.primaryDown {
		return
	}
	b.primaryDown = false
	b.editor.EndStroke()
	b.editor.EndMark()
}

func (b *Board) MouseIn(e *desktop.MouseEvent) {
	// A release outside the board never reaches MouseUp.
	if e.Button&desktop.MouseButtonPrimary == 0 {
		b.finishPrimary()
	}
	if e.Button&desktop.MouseButtonSecondary == 0 {
		b.secondaryDown = false
	}
	b.MouseMoved(e)
}

func (b *Board) MouseMoved(e *desktop.MouseEvent) {
	cell, ok := b.cellAt(e.Position)
	b.state.SetHover(cell, ok)
	if !ok {
		return
	}
	if b.primaryDown {
		if b.state.Tool == ToolMark {
			b.editor.MarkDrag(cell)
		} else {
			b.editor.Paint(cell, b.state.Color())
		}
	}
	if b.secondaryDown {
		b.editor.Select(b.selectFrom, cell)
	}
}

func (b *Board) MouseOut() {
	b.state.SetHover(state.Cell{}, false)
}

func (b *Board) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY > 0 {
		b.ZoomIn()
	} else if e.Scrolled.DY < 0 {
		b.ZoomOut()
	}
}

func (b *Board) ZoomIn() {
	if b.zoom.In() {
		b.zoomChanged()
	}
}

func (b *Board) ZoomOut() {
	if b.zoom.Out() {
		b.zoomChanged()
	}
}

func (b *Board) zoomChanged() {
	b.Refresh()
	if b.OnZoom != nil {
		b.OnZoom(b.zoom.Percent())
	}
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(boardBackground),
		selection:  canvas.NewRectangle(selectionFill),
	}
	r.selection.StrokeColor = selectionStroke
	r.selection.StrokeWidth = 2
	r.rebuild()
	b.renderer = r
	return r
}

// boardRenderer owns one rectangle per cell, indexed [row][col], and one
// circle per marked cell. Both are rebuilt whenever the grid size or the
// zoom level changes.
type boardRenderer struct {
	board      *Board
	background *canvas.Rectangle
	tiles      [][]*canvas.Rectangle
	marks      map[state.Cell]*canvas.Circle
	selection  *canvas.Rectangle
	objects    []fyne.CanvasObject

	builtSize int
	builtTile int
}

func (r *boardRenderer) rebuild() {
	ed := r.board.editor
	n := ed.Size()
	tile := float32(r.board.zoom.Tile())

	r.tiles = make([][]*canvas.Rectangle, n)
	for row := range r.tiles {
		r.tiles[row] = make([]*canvas.Rectangle, n)
		for col := range r.tiles[row] {
			hex, _ := ed.Grid().At(state.Cell{Row: row, Col: col})
			rect := canvas.NewRectangle(hexColor(hex))
			if tile >= 4 {
				rect.StrokeColor = tileOutline
				rect.StrokeWidth = 1
			}
			rect.Move(fyne.NewPos(float32(col)*tile, float32(row)*tile))
			rect.Resize(fyne.NewSquareSize(tile))
			r.tiles[row][col] = rect
		}
	}

	r.marks = make(map[state.Cell]*canvas.Circle)
	for _, c := range ed.Marks().Cells() {
		r.marks[c] = r.newMark(c)
	}
	r.builtSize, r.builtTile = n, r.board.zoom.Tile()
	r.layoutSelection()
	r.collect()
}

func (r *boardRenderer) newMark(c state.Cell) *canvas.Circle {
	tile := float32(r.board.zoom.Tile())
	d := max(tile/2.5, 1)
	dot := canvas.NewCircle(markColor)
	dot.Resize(fyne.NewSquareSize(d))
	dot.Move(fyne.NewPos(float32(c.Col)*tile+(tile-d)/2, float32(c.Row)*tile+(tile-d)/2))
	return dot
}

// collect rebuilds the draw list: background, tiles, marks, then selection.
func (r *boardRenderer) collect() {
	n := len(r.tiles)
	objs := make([]fyne.CanvasObject, 0, 2+n*n+len(r.marks))
	objs = append(objs, r.background)
	for _, row := range r.tiles {
		for _, rect := range row {
			objs = append(objs, rect)
		}
	}
	for _, c := range r.board.editor.Marks().Cells() {
		if dot, ok := r.marks[c]; ok {
			objs = append(objs, dot)
		}
	}
	objs = append(objs, r.selection)
	r.objects = objs
}

func (r *boardRenderer) layoutSelection() {
	sel, ok := r.board.editor.Selection()
	if !ok {
		r.selection.Hide()
		return
	}
	tile := float32(r.board.zoom.Tile())
	r.selection.Move(fyne.NewPos(float32(sel.Left)*tile, float32(sel.Top)*tile))
	r.selection.Resize(fyne.NewSize(float32(sel.Width())*tile, float32(sel.Height())*tile))
	r.selection.Show()
}

// apply repaints only what ch touched.
func (r *boardRenderer) apply(ch state.Change) {
	if ch.Full {
		r.rebuild()
		r.board.Refresh()
		return
	}
	ed := r.board.editor
	for _, c := range ch.Cells {
		if c.Row >= len(r.tiles) || c.Col >= len(r.tiles[c.Row]) {
			continue
		}
		hex, _ := ed.Grid().At(c)
		rect := r.tiles[c.Row][c.Col]
		rect.FillColor = hexColor(hex)
		rect.Refresh()
	}
	if len(ch.Marks) > 0 {
		for _, c := range ch.Marks {
			_, drawn := r.marks[c]
			switch has := ed.Marks().Has(c); {
			case has && !drawn:
				r.marks[c] = r.newMark(c)
			case !has && drawn:
				delete(r.marks, c)
			}
		}
		r.collect()
		canvas.Refresh(r.board)
	}
	if ch.Selection {
		r.layoutSelection()
		r.selection.Refresh()
	}
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(r.board.zoom.Extent(r.board.editor.Size()))
}

func (r *boardRenderer) Refresh() {
	if r.builtSize != r.board.editor.Size() || r.builtTile != r.board.zoom.Tile() {
		r.rebuild()
	}
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Destroy() {}
