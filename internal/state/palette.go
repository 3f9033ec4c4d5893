package state

const (
	MaxColors = 15
	MaxRecent = 10

	defaultFirstColor = "#3a6ea5"
)

// Palette holds the fixed swatch slots and the recently chosen colours,
// most recent first.
type Palette struct {
	colors [MaxColors]string
	recent []string
}

func NewPalette() *Palette {
	p := &Palette{}
	for i := range p.colors {
		p.colors[i] = EmptySlot
	}
	p.colors[0] = defaultFirstColor
	return p
}

// BuildPalette tolerates anything read from disk: extra slots are dropped,
// missing or invalid ones become EmptySlot, and bad recent entries are skipped.
func BuildPalette(colors, recent []string) *Palette {
	p := NewPalette()
	for i := range p.colors {
		p.colors[i] = EmptySlot
		if i < len(colors) {
			if hex, ok := NormalizeHex(colors[i]); ok {
				p.colors[i] = hex
			}
		}
	}
	for i := len(recent) - 1; i >= 0; i-- {
		p.PushRecent(recent[i])
	}
	return p
}

// Color returns slot i, falling back to slot 0 for out-of-range indexes.
func (p *Palette) Color(i int) string {
	if i < 0 || i >= MaxColors {
		return p.colors[0]
	}
	return p.colors[i]
}

// SetColor stores a colour in slot i.
func (p *Palette) SetColor(i int, color string) bool {
	hex, ok := NormalizeHex(color)
	if !ok || i < 0 || i >= MaxColors {
		return false
	}
	p.colors[i] = hex
	return true
}

func (p *Palette) Colors() []string {
	return append([]string(nil), p.colors[:]...)
}

func (p *Palette) Recent() []string {
	return append([]string(nil), p.recent...)
}

// PushRecent moves color to the front of the recent list, dropping any
// earlier copy and trimming the list to MaxRecent.
func (p *Palette) PushRecent(color string) bool {
	hex, ok := NormalizeHex(color)
	if !ok {
		return false
	}
	next := make([]string, 0, MaxRecent)
	next = append(next, hex)
	for _, c := range p.recent {
		if c != hex && len(next) < MaxRecent {
			next = append(next, c)
		}
	}
	p.recent = next
	return true
}
