// Package colorpick holds the geometry and colour math behind the HSV picker
// dialog: a hue ring around a saturation/value square.
package colorpick

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"KnitBoard/internal/state"
)

// Wheel is an annulus centred on (CX, CY). Only points between Inner and
// Outer pick a hue.
type Wheel struct {
	CX, CY       float64
	Inner, Outer float64
}

// HueAt returns the hue in [0,1) under (x, y). Angles run counter-clockwise
// from the +x axis with screen y pointing down.
func (w Wheel) HueAt(x, y float64) (float64, bool) {
	dx, dy := x-w.CX, w.CY-y
	dist := math.Hypot(dx, dy)
	if dist < w.Inner || dist > w.Outer {
		return 0, false
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return math.Mod(deg, 360) / 360, true
}

// Point is the inverse of HueAt, at the middle of the ring.
func (w Wheel) Point(hue float64) (x, y float64) {
	r := (w.Inner + w.Outer) / 2
	a := hue * 2 * math.Pi
	return w.CX + r*math.Cos(a), w.CY - r*math.Sin(a)
}

// Square maps saturation along x and value along inverted y.
type Square struct {
	X, Y, Size float64
}

func (s Square) Contains(x, y float64) bool {
	return x >= s.X && x <= s.X+s.Size && y >= s.Y && y <= s.Y+s.Size
}

// SVAt returns saturation and value for (x, y), clamped to [0,1].
func (s Square) SVAt(x, y float64) (sat, val float64) {
	if s.Size <= 0 {
		return 0, 0
	}
	sat = clamp01((x - s.X) / s.Size)
	val = 1 - clamp01((y-s.Y)/s.Size)
	return sat, val
}

// Point is the inverse of SVAt.
func (s Square) Point(sat, val float64) (x, y float64) {
	return s.X + sat*s.Size, s.Y + (1-val)*s.Size
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Picker is the dialog's working colour in HSV, each component in [0,1].
type Picker struct {
	H, S, V float64
}

// New starts the picker at initial, or black when initial is not a valid hex colour.
func New(initial string) *Picker {
	p := &Picker{}
	p.SetHex(initial)
	return p
}

// SetHex replaces the colour with a 6-digit hex value. Invalid input is
// ignored and leaves the previous colour in place.
func (p *Picker) SetHex(s string) bool {
	hex, ok := state.NormalizeHex(s)
	if !ok {
		return false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return false
	}
	h, sat, v := c.Hsv()
	p.H, p.S, p.V = h/360, sat, v
	return true
}

// SetHue is driven by the wheel.
func (p *Picker) SetHue(h float64) {
	p.H = math.Mod(math.Max(h, 0), 1)
}

// SetSV is driven by the square.
func (p *Picker) SetSV(s, v float64) {
	p.S, p.V = clamp01(s), clamp01(v)
}

// Hex returns the current colour as lowercase "#rrggbb".
func (p *Picker) Hex() string {
	return colorful.Hsv(p.H*360, p.S, p.V).Clamped().Hex()
}
