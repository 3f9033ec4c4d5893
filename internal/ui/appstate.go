package ui

import (
	"KnitBoard/internal/state"
)

type Tool int

const (
	ToolPaint Tool = iota
	ToolMark
)

func (t Tool) String() string {
	if t == ToolMark {
		return "Mark"
	}
	return "Paint"
}

// AppState is the UI state that is not part of the pattern itself.
type AppState struct {
	Tool     Tool
	Selected int
	Palette  *state.Palette

	hover    state.Cell
	hovering bool
}

func NewAppState(p *state.Palette) *AppState {
	if p == nil {
		p = state.NewPalette()
	}
	return &AppState{Palette: p}
}

// Color is the colour the brush paints with.
func (s *AppState) Color() string {
	return s.Palette.Color(s.Selected)
}

func (s *AppState) Select(i int) {
	if i >= 0 && i < state.MaxColors {
		s.Selected = i
	}
}

func (s *AppState) ToggleTool() Tool {
	if s.Tool == ToolPaint {
		s.Tool = ToolMark
	} else {
		s.Tool = ToolPaint
	}
	return s.Tool
}

func (s *AppState) SetHover(c state.Cell, ok bool) {
	s.hover, s.hovering = c, ok
}

func (s *AppState) Hover() (state.Cell, bool) {
	return s.hover, s.hovering
}

// PasteAnchor is the cell under the pointer, else the selection's top-left
// corner, else the grid origin.
func (s *AppState) PasteAnchor(sel state.Rect, hasSel bool) state.Cell {
	if s.hovering {
		return s.hover
	}
	if hasSel {
		return sel.Origin()
	}
	return state.Cell{}
}
