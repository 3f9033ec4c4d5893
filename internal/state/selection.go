package state

// Rect is an inclusive, normalized rectangle of cells.
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// NewRect builds the rectangle spanned by two corners given in any order.
func NewRect(a, b Cell) Rect {
	return Rect{
		Top:    min(a.Row, b.Row),
		Left:   min(a.Col, b.Col),
		Bottom: max(a.Row, b.Row),
		Right:  max(a.Col, b.Col),
	}
}

func (r Rect) Width() int  { return r.Right - r.Left + 1 }
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }

// Origin is the top-left cell.
func (r Rect) Origin() Cell { return Cell{Row: r.Top, Col: r.Left} }

func (r Rect) Contains(c Cell) bool {
	return c.Row >= r.Top && c.Row <= r.Bottom && c.Col >= r.Left && c.Col <= r.Right
}

func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right < o.Left || o.Right < r.Left ||
		r.Bottom < o.Top || o.Bottom < r.Top)
}

// Clip intersects r with an n×n grid. ok is false when nothing is left.
func (r Rect) Clip(n int) (Rect, bool) {
	bounds := Rect{Top: 0, Left: 0, Bottom: n - 1, Right: n - 1}
	if n < 1 || !r.Overlaps(bounds) {
		return Rect{}, false
	}
	return Rect{
		Top:    max(r.Top, 0),
		Left:   max(r.Left, 0),
		Bottom: min(r.Bottom, n-1),
		Right:  min(r.Right, n-1),
	}, true
}

// Cells lists every cell of r in row-major order.
func (r Rect) Cells() []Cell {
	out := make([]Cell, 0, r.Width()*r.Height())
	for row := r.Top; row <= r.Bottom; row++ {
		for col := r.Left; col <= r.Right; col++ {
			out = append(out, Cell{Row: row, Col: col})
		}
	}
	return out
}
