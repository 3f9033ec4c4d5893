package share

import (
	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
)

const (
	TypeSnapshot = "snapshot"
	TypeCells    = "cells"
	TypeMarks    = "marks"
)

// Message is what a host pushes to its viewers. A snapshot carries the whole
// project; cells and marks messages carry deltas on top of it.
type Message struct {
	Type    string            `json:"type"`
	Origin  string            `json:"origin,omitempty"`
	Project *store.ProjectDoc `json:"project,omitempty"`
	Cells   []state.CellColor `json:"cells,omitempty"`
	Marks   [][2]int          `json:"marks,omitempty"`
}

// MarkCells converts wire mark pairs back to cells.
func (m Message) MarkCells() []state.Cell {
	out := make([]state.Cell, 0, len(m.Marks))
	for _, t := range m.Marks {
		out = append(out, state.Cell{Row: t[0], Col: t[1]})
	}
	return out
}
