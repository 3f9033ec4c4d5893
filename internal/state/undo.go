package state

// DefaultUndoLimit is how many strokes the undo log keeps.
const DefaultUndoLimit = 50

// StrokeEntry remembers the colour a cell had before a stroke touched it.
type StrokeEntry struct {
	Cell Cell
	Prev string
}

// Stroke is every cell edit made between pointer down and release.
type Stroke []StrokeEntry

// UndoLog is a bounded stack of strokes. When full, the oldest stroke is dropped.
type UndoLog struct {
	limit   int
	strokes []Stroke
}

func NewUndoLog(limit int) *UndoLog {
	if limit < 1 {
		limit = DefaultUndoLimit
	}
	return &UndoLog{limit: limit}
}

// Push appends s. Empty strokes are discarded.
func (u *UndoLog) Push(s Stroke) {
	if len(s) == 0 {
		return
	}
	u.strokes = append(u.strokes, s)
	if over := len(u.strokes) - u.limit; over > 0 {
		u.strokes = append(u.strokes[:0], u.strokes[over:]...)
	}
}

// Pop removes and returns the most recent stroke.
func (u *UndoLog) Pop() (Stroke, bool) {
	if len(u.strokes) == 0 {
		return nil, false
	}
	last := u.strokes[len(u.strokes)-1]
	u.strokes = u.strokes[:len(u.strokes)-1]
	return last, true
}

func (u *UndoLog) Len() int { return len(u.strokes) }

func (u *UndoLog) Reset() { u.strokes = nil }
