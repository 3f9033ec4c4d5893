package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	colorful "github.com/lucasb-eyer/go-colorful"

	"KnitBoard/internal/colorpick"
)

const (
	pickerSize  = 220
	ringOuter   = 108
	ringInner   = 86
	squareSide  = 112
	markerSize  = 10
	markerWidth = 2
)

// dragTarget is the part of the picker a press started on.
type dragTarget int

const (
	dragNone dragTarget = iota
	dragSV
	dragHue
)

// hsvArea is the hue ring with the saturation/value square inside it.
type hsvArea struct {
	widget.BaseWidget
	picker *colorpick.Picker
	wheel  colorpick.Wheel
	square colorpick.Square

	ring, sv  *canvas.Raster
	hueMarker *canvas.Circle
	svMarker  *canvas.Circle

	dragging dragTarget
	onChange func()
}

var _ fyne.Tappable = (*hsvArea)(nil)
var _ fyne.Draggable = (*hsvArea)(nil)

func newHSVArea(p *colorpick.Picker, onChange func()) *hsvArea {
	c := float64(pickerSize) / 2
	a := &hsvArea{
		picker:   p,
		wheel:    colorpick.Wheel{CX: c, CY: c, Inner: ringInner, Outer: ringOuter},
		square:   colorpick.Square{X: c - squareSide/2, Y: c - squareSide/2, Size: squareSide},
		onChange: onChange,
	}
	a.ring = canvas.NewRasterWithPixels(a.ringPixel)
	a.sv = canvas.NewRasterWithPixels(a.svPixel)
	a.hueMarker = newMarker()
	a.svMarker = newMarker()
	a.ExtendBaseWidget(a)
	return a
}

func newMarker() *canvas.Circle {
	m := canvas.NewCircle(color.Transparent)
	m.StrokeColor = color.White
	m.StrokeWidth = markerWidth
	m.Resize(fyne.NewSquareSize(markerSize))
	return m
}

// ringPixel scales raster pixels back to widget units, which the wheel
// geometry is expressed in.
func (a *hsvArea) ringPixel(x, y, w, h int) color.Color {
	ux := float64(x) * pickerSize / float64(w)
	uy := float64(y) * pickerSize / float64(h)
	hue, ok := a.wheel.HueAt(ux, uy)
	if !ok {
		return color.Transparent
	}
	return colorful.Hsv(hue*360, 1, 1)
}

func (a *hsvArea) svPixel(x, y, w, h int) color.Color {
	s := float64(x) / float64(max(w-1, 1))
	v := 1 - float64(y)/float64(max(h-1, 1))
	return colorful.Hsv(a.picker.H*360, s, v).Clamped()
}

func (a *hsvArea) pick(pos fyne.Position, start bool) {
	x, y := float64(pos.X), float64(pos.Y)
	if start {
		a.dragging = dragNone
		if a.square.Contains(x, y) {
			a.dragging = dragSV
		} else if _, ok := a.wheel.HueAt(x, y); ok {
			a.dragging = dragHue
		}
	}
	switch a.dragging {
	case dragSV:
		a.picker.SetSV(a.square.SVAt(x, y))
	case dragHue:
		if hue, ok := a.wheel.HueAt(x, y); ok {
			a.picker.SetHue(hue)
			a.sv.Refresh()
		}
	default:
		return
	}
	a.Refresh()
	if a.onChange != nil {
		a.onChange()
	}
}

func (a *hsvArea) Tapped(e *fyne.PointEvent) { a.pick(e.Position, true) }

func (a *hsvArea) Dragged(e *fyne.DragEvent) {
	a.pick(e.Position, a.dragging == dragNone)
}

func (a *hsvArea) DragEnd() { a.dragging = dragNone }

func (a *hsvArea) CreateRenderer() fyne.WidgetRenderer {
	return &hsvRenderer{area: a, objects: []fyne.CanvasObject{a.ring, a.sv, a.hueMarker, a.svMarker}}
}

type hsvRenderer struct {
	area    *hsvArea
	objects []fyne.CanvasObject
}

func (r *hsvRenderer) Layout(fyne.Size) {
	a := r.area
	a.ring.Resize(fyne.NewSquareSize(pickerSize))
	a.sv.Move(fyne.NewPos(float32(a.square.X), float32(a.square.Y)))
	a.sv.Resize(fyne.NewSquareSize(float32(a.square.Size)))

	hx, hy := a.wheel.Point(a.picker.H)
	a.hueMarker.Move(fyne.NewPos(float32(hx)-markerSize/2, float32(hy)-markerSize/2))
	sx, sy := a.square.Point(a.picker.S, a.picker.V)
	a.svMarker.Move(fyne.NewPos(float32(sx)-markerSize/2, float32(sy)-markerSize/2))
}

func (r *hsvRenderer) MinSize() fyne.Size { return fyne.NewSquareSize(pickerSize) }

func (r *hsvRenderer) Refresh() {
	r.Layout(r.area.Size())
	for _, o := range r.objects {
		o.Refresh()
	}
}

func (r *hsvRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *hsvRenderer) Destroy()                     {}

// ShowColorPicker opens the HSV picker starting at initial. done receives the
// chosen colour and true on OK, or "" and false when the dialog is dismissed.
func ShowColorPicker(title, initial string, win fyne.Window, done func(hex string, ok bool)) {
	p := colorpick.New(initial)
	preview := canvas.NewRectangle(hexColor(p.Hex()))
	preview.SetMinSize(fyne.NewSize(64, 32))

	hexEntry := widget.NewEntry()
	hexEntry.SetText(p.Hex())

	syncing := false
	area := newHSVArea(p, func() {
		preview.FillColor = hexColor(p.Hex())
		preview.Refresh()
		syncing = true
		hexEntry.SetText(p.Hex())
		syncing = false
	})

	applyHex := func(s string) {
		// Anything that is not six hex digits is ignored.
		if syncing || !p.SetHex(s) {
			return
		}
		preview.FillColor = hexColor(p.Hex())
		preview.Refresh()
		area.sv.Refresh()
		area.Refresh()
	}
	hexEntry.OnChanged = applyHex
	hexEntry.OnSubmitted = applyHex

	content := container.NewVBox(
		container.NewCenter(area),
		container.NewBorder(nil, nil, widget.NewLabel("Hex"), preview, hexEntry),
	)
	d := dialog.NewCustomConfirm(title, "OK", "Cancel", content, func(ok bool) {
		if !ok {
			done("", false)
			return
		}
		done(p.Hex(), true)
	}, win)
	d.Show()
}
