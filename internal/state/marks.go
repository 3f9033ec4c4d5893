package state

import "sort"

// Marks is the set of cells flagged as completed stitches.
type Marks struct {
	set map[Cell]struct{}
}

func NewMarks() *Marks {
	return &Marks{set: make(map[Cell]struct{})}
}

func (m *Marks) Has(c Cell) bool {
	_, ok := m.set[c]
	return ok
}

// Add reports whether c was newly added.
func (m *Marks) Add(c Cell) bool {
	if m.Has(c) {
		return false
	}
	m.set[c] = struct{}{}
	return true
}

// Remove reports whether c was present.
func (m *Marks) Remove(c Cell) bool {
	if !m.Has(c) {
		return false
	}
	delete(m.set, c)
	return true
}

func (m *Marks) Len() int { return len(m.set) }

// Cells returns the marked cells in row-major order.
func (m *Marks) Cells() []Cell {
	out := make([]Cell, 0, len(m.set))
	for c := range m.set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
