package ui

import (
	"image/color"

	"KnitBoard/internal/state"
)

var (
	panelBackground = color.NRGBA{R: 0x2d, G: 0x2d, B: 0x2d, A: 0xff}
	boardBackground = color.NRGBA{R: 0x3d, G: 0x3d, B: 0x3d, A: 0xff}
	tileOutline     = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff}
	markColor       = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xd0}
	selectionStroke = color.NRGBA{R: 0x00, G: 0xa0, B: 0xff, A: 0xff}
	selectionFill   = color.NRGBA{R: 0x00, G: 0xa0, B: 0xff, A: 0x30}
)

// hexColor converts "#rrggbb" to a colour, white when it cannot be parsed.
func hexColor(hex string) color.NRGBA {
	r, g, b, ok := state.RGB255(hex)
	if !ok {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
