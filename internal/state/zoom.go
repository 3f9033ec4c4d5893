package state

const (
	DefaultTileSize = 5
	DefaultTileMin  = 2
	DefaultTileMax  = 20
)

// Zoom is the on-screen size of one cell in pixels, kept within [min, max].
type Zoom struct {
	tile     int
	base     int
	min, max int
}

// NewZoom clamps start into [lo, hi]. The starting size is what Percent
// reports as 100%.
func NewZoom(start, lo, hi int) *Zoom {
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	start = max(lo, min(start, hi))
	return &Zoom{tile: start, base: start, min: lo, max: hi}
}

func (z *Zoom) Tile() int { return z.tile }

func (z *Zoom) In() bool  { return z.set(z.tile + 1) }
func (z *Zoom) Out() bool { return z.set(z.tile - 1) }

func (z *Zoom) set(tile int) bool {
	tile = max(z.min, min(tile, z.max))
	if tile == z.tile {
		return false
	}
	z.tile = tile
	return true
}

func (z *Zoom) Percent() int {
	return z.tile * 100 / z.base
}

// CellAt maps a pixel offset inside the board to the cell under it.
func (z *Zoom) CellAt(x, y float32, n int) (Cell, bool) {
	if x < 0 || y < 0 {
		return Cell{}, false
	}
	c := Cell{Row: int(y) / z.tile, Col: int(x) / z.tile}
	if c.Row >= n || c.Col >= n {
		return Cell{}, false
	}
	return c, true
}

// Extent is the side length of an n×n board at the current tile size.
func (z *Zoom) Extent(n int) float32 {
	return float32(n * z.tile)
}
