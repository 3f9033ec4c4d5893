package state

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// Background is the colour of an untouched cell. Cut and Clear reset to it.
	Background = "#f5f5f5"
	// EmptySlot fills palette slots that were never assigned.
	EmptySlot = "#ffffff"
)

// Cell addresses one tile of the grid.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CellColor pairs a cell with the colour it holds.
type CellColor struct {
	Cell
	Color string `json:"color"`
}

// Change describes what a mutation touched so a renderer can repaint only that.
// Full means the whole grid (and possibly its size) must be rebuilt.
type Change struct {
	Rev       uint64
	Cells     []Cell
	Marks     []Cell
	Selection bool
	Full      bool
}

// NormalizeHex accepts "#rrggbb" or "rrggbb" and returns the lowercase "#rrggbb" form.
func NormalizeHex(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 {
		return "", false
	}
	c, err := colorful.Hex(s)
	// Sscanf inside Hex tolerates embedded spaces and signs; only an exact
	// round trip is a real colour.
	if err != nil || c.Hex() != s {
		return "", false
	}
	return s, true
}

// RGB255 returns the channels of a hex colour, ok=false when it does not parse.
func RGB255(hex string) (r, g, b uint8, ok bool) {
	norm, ok := NormalizeHex(hex)
	if !ok {
		return 0, 0, 0, false
	}
	c, _ := colorful.Hex(norm)
	r, g, b = c.RGB255()
	return r, g, b, true
}
