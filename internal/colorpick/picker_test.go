package colorpick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWheelHueAt(t *testing.T) {
	w := Wheel{CX: 100, CY: 100, Inner: 60, Outer: 90}

	h, ok := w.HueAt(180, 100)
	require.True(t, ok)
	assert.InDelta(t, 0.0, h, 1e-9)

	h, ok = w.HueAt(100, 20)
	require.True(t, ok)
	assert.InDelta(t, 0.25, h, 1e-9, "straight up is 90 degrees")

	h, ok = w.HueAt(20, 100)
	require.True(t, ok)
	assert.InDelta(t, 0.5, h, 1e-9)

	h, ok = w.HueAt(100, 180)
	require.True(t, ok)
	assert.InDelta(t, 0.75, h, 1e-9)

	_, ok = w.HueAt(100, 100)
	assert.False(t, ok, "centre is inside the hole")
	_, ok = w.HueAt(195, 100)
	assert.False(t, ok, "outside the ring")
}

func TestWheelPointRoundTrip(t *testing.T) {
	w := Wheel{CX: 50, CY: 50, Inner: 30, Outer: 45}
	for _, hue := range []float64{0, 0.1, 0.33, 0.5, 0.9} {
		x, y := w.Point(hue)
		got, ok := w.HueAt(x, y)
		require.True(t, ok)
		assert.InDelta(t, hue, got, 1e-9)
	}
}

func TestSquareSVAt(t *testing.T) {
	sq := Square{X: 10, Y: 10, Size: 100}

	s, v := sq.SVAt(10, 10)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 1.0, v)

	s, v = sq.SVAt(110, 110)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, 0.0, v)

	s, v = sq.SVAt(60, 35)
	assert.InDelta(t, 0.5, s, 1e-9)
	assert.InDelta(t, 0.75, v, 1e-9)

	s, v = sq.SVAt(-50, 500)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 0.0, v)
}

func TestPickerHex(t *testing.T) {
	p := New("#ff0000")
	assert.Equal(t, "#ff0000", p.Hex())
	assert.InDelta(t, 0.0, p.H, 1e-9)

	assert.False(t, p.SetHex("xyz123"))
	assert.False(t, p.SetHex("#12345"))
	assert.Equal(t, "#ff0000", p.Hex(), "invalid input keeps the old colour")

	require.True(t, p.SetHex("00FF00"))
	assert.Equal(t, "#00ff00", p.Hex())
	assert.InDelta(t, 1.0/3, p.H, 1e-6)

	p.SetHue(2.0 / 3)
	p.SetSV(1, 1)
	assert.Equal(t, "#0000ff", p.Hex())

	p.SetSV(0, 1)
	assert.Equal(t, "#ffffff", p.Hex())
}
