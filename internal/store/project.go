package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"KnitBoard/internal/state"
)

// ProjectDoc is the on-disk (and on-wire) form of a pattern.
type ProjectDoc struct {
	GridSize    int        `json:"grid_size"`
	GridData    [][]string `json:"grid_data"`
	MarkedTiles [][2]int   `json:"marked_tiles"`
}

// Snapshot captures a grid and its marks as a document.
func Snapshot(g *state.Grid, m *state.Marks) ProjectDoc {
	return ProjectDoc{
		GridSize:    g.Size(),
		GridData:    g.Rows(),
		MarkedTiles: MarkPairs(m),
	}
}

// MarkPairs lists marked cells as [row, col] pairs, never nil.
func MarkPairs(m *state.Marks) [][2]int {
	out := [][2]int{}
	if m == nil {
		return out
	}
	for _, c := range m.Cells() {
		out = append(out, [2]int{c.Row, c.Col})
	}
	return out
}

// Restore copies the document into an n×n grid cell by cell, up to the
// smaller of the two sizes. Invalid colours keep the background and marks
// outside the grid are dropped.
func (doc ProjectDoc) Restore(n int) (*state.Grid, *state.Marks) {
	g := state.NewGrid(n)
	rows := min(n, len(doc.GridData))
	for r := 0; r < rows; r++ {
		cols := min(n, len(doc.GridData[r]))
		for c := 0; c < cols; c++ {
			g.Set(state.Cell{Row: r, Col: c}, doc.GridData[r][c])
		}
	}
	m := state.NewMarks()
	for _, t := range doc.MarkedTiles {
		cell := state.Cell{Row: t[0], Col: t[1]}
		if g.InBounds(cell) {
			m.Add(cell)
		}
	}
	return g, m
}

// DecodeProject parses a project document from r.
func DecodeProject(r io.Reader) (ProjectDoc, error) {
	var doc ProjectDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ProjectDoc{}, fmt.Errorf("parse project: %w", err)
	}
	return doc, nil
}

// LoadProject reads the pattern at path into an n×n grid. A missing or
// malformed file yields a blank grid together with the error.
func LoadProject(path string, n int) (*state.Grid, *state.Marks, error) {
	f, err := os.Open(path)
	if err != nil {
		return state.NewGrid(n), state.NewMarks(), fmt.Errorf("open project: %w", err)
	}
	defer f.Close()

	doc, err := DecodeProject(f)
	if err != nil {
		return state.NewGrid(n), state.NewMarks(), fmt.Errorf("%s: %w", path, err)
	}
	if doc.GridSize != 0 && doc.GridSize != n {
		logrus.WithField("component", "store").
			Infof("project %s was saved at %d×%d, loading into %d×%d", path, doc.GridSize, doc.GridSize, n, n)
	}
	g, m := doc.Restore(n)
	return g, m, nil
}

func SaveProject(path string, g *state.Grid, m *state.Marks) error {
	data, err := json.Marshal(Snapshot(g, m))
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}
	logrus.WithField("component", "store").WithField("path", path).Info("project saved")
	return nil
}
