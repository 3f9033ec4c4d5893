package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"KnitBoard/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	rect   *canvas.Rectangle
	border *canvas.Rectangle

	OnTapped          func()
	OnTappedSecondary func()
}

var _ fyne.Tappable = (*colorSwatch)(nil)
var _ fyne.SecondaryTappable = (*colorSwatch)(nil)

func newColorSwatch(hex string, size float32) *colorSwatch {
	s := &colorSwatch{
		rect:   canvas.NewRectangle(hexColor(hex)),
		border: canvas.NewRectangle(color.Transparent),
	}
	s.rect.SetMinSize(fyne.NewSquareSize(size))
	s.border.StrokeColor = panelBackground
	s.border.StrokeWidth = 2
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(s.rect, s.border))
}

func (s *colorSwatch) SetColor(hex string) {
	s.rect.FillColor = hexColor(hex)
	s.rect.Refresh()
}

func (s *colorSwatch) SetSelected(selected bool) {
	if selected {
		s.border.StrokeColor = color.White
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = panelBackground
		s.border.StrokeWidth = 2
	}
	s.border.Refresh()
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

func (s *colorSwatch) TappedSecondary(_ *fyne.PointEvent) {
	if s.OnTappedSecondary != nil {
		s.OnTappedSecondary()
	}
}

// PalettePanel is the left-hand column: slots, recent colours, tool mode
// and zoom controls.
type PalettePanel struct {
	state    *AppState
	slots    []*colorSwatch
	recent   *fyne.Container
	tool     *widget.RadioGroup
	zoomText *widget.Label

	// OnEdit asks for slot i to be re-coloured.
	OnEdit func(i int)
	// OnChanged fires after the palette itself was modified.
	OnChanged func()
	OnZoomIn  func()
	OnZoomOut func()
	OnClear   func()
}

func NewPalettePanel(st *AppState) *PalettePanel {
	return &PalettePanel{
		state:    st,
		recent:   container.NewGridWithColumns(5),
		zoomText: widget.NewLabel("100%"),
	}
}

// Build assembles the panel. Callbacks must be set before calling it.
func (p *PalettePanel) Build() fyne.CanvasObject {
	slotBox := container.NewVBox()
	for i := 0; i < state.MaxColors; i++ {
		idx := i
		sw := newColorSwatch(p.state.Palette.Color(i), 24)
		sw.OnTapped = func() { p.selectSlot(idx) }
		sw.OnTappedSecondary = func() {
			if p.OnEdit != nil {
				p.OnEdit(idx)
			}
		}
		p.slots = append(p.slots, sw)
		label := widget.NewLabel(fmt.Sprintf("%2d", i+1))
		slotBox.Add(container.NewHBox(sw, label))
	}
	p.selectSlot(p.state.Selected)
	p.refreshRecent()

	p.tool = widget.NewRadioGroup([]string{ToolPaint.String(), ToolMark.String()}, func(v string) {
		if v == ToolMark.String() {
			p.state.Tool = ToolMark
		} else {
			p.state.Tool = ToolPaint
		}
	})
	p.tool.Horizontal = true
	p.tool.Required = true
	p.tool.SetSelected(p.state.Tool.String())

	zoomBox := container.NewHBox(
		widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() { call(p.OnZoomOut) }),
		p.zoomText,
		widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() { call(p.OnZoomIn) }),
	)

	help := widget.NewLabel("Left-click: select / paint\nRight-click swatch: edit\nRight-drag grid: select\nCtrl+Z undo, Ctrl+C/X/V\nEsc deselect, M mark mode\nScroll: zoom")
	help.TextStyle = fyne.TextStyle{Italic: true}

	return container.NewVBox(
		widget.NewLabelWithStyle("Colors", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		slotBox,
		widget.NewSeparator(),
		widget.NewLabel("Recent"),
		p.recent,
		widget.NewSeparator(),
		p.tool,
		zoomBox,
		widget.NewButtonWithIcon("Clear Grid", theme.DeleteIcon(), func() { call(p.OnClear) }),
		layout.NewSpacer(),
		help,
	)
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (p *PalettePanel) selectSlot(i int) {
	p.state.Select(i)
	for j, sw := range p.slots {
		sw.SetSelected(j == p.state.Selected)
	}
}

// Refresh re-reads every slot and the recent list from the palette.
func (p *PalettePanel) Refresh() {
	for i, sw := range p.slots {
		sw.SetColor(p.state.Palette.Color(i))
	}
	p.refreshRecent()
}

func (p *PalettePanel) refreshRecent() {
	p.recent.RemoveAll()
	for _, hex := range p.state.Palette.Recent() {
		c := hex
		sw := newColorSwatch(c, 18)
		// Tapping a recent colour drops it into the selected slot.
		sw.OnTapped = func() {
			if p.state.Palette.SetColor(p.state.Selected, c) {
				p.slots[p.state.Selected].SetColor(c)
				call(p.OnChanged)
			}
		}
		p.recent.Add(sw)
	}
	p.recent.Refresh()
}

// SetTool reflects a tool change made elsewhere (e.g. the M key).
func (p *PalettePanel) SetTool(t Tool) {
	if p.tool != nil {
		p.tool.SetSelected(t.String())
	}
}

func (p *PalettePanel) SetZoom(percent int) {
	p.zoomText.SetText(fmt.Sprintf("%d%%", percent))
}
