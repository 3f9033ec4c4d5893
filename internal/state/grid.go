package state

// MaxGridSize bounds the side of any grid the editor or a viewer will build.
const MaxGridSize = 512

// Grid is a fixed N×N array of hex colours. Every cell always holds a valid colour.
type Grid struct {
	size  int
	cells [][]string
}

// NewGrid returns an n×n grid filled with the background colour.
func NewGrid(n int) *Grid {
	if n < 1 {
		n = 1
	}
	g := &Grid{size: n, cells: make([][]string, n)}
	for r := range g.cells {
		row := make([]string, n)
		for c := range row {
			row[c] = Background
		}
		g.cells[r] = row
	}
	return g
}

func (g *Grid) Size() int { return g.size }

func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

func (g *Grid) At(c Cell) (string, bool) {
	if !g.InBounds(c) {
		return "", false
	}
	return g.cells[c.Row][c.Col], true
}

// Set stores color at c. It rejects out-of-range cells and invalid colours.
func (g *Grid) Set(c Cell, color string) bool {
	if !g.InBounds(c) {
		return false
	}
	hex, ok := NormalizeHex(color)
	if !ok {
		return false
	}
	g.cells[c.Row][c.Col] = hex
	return true
}

// Rows returns a copy of the grid contents, row major.
func (g *Grid) Rows() [][]string {
	out := make([][]string, g.size)
	for r, row := range g.cells {
		out[r] = append([]string(nil), row...)
	}
	return out
}
