package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"KnitBoard/internal/state"
)

type paletteDoc struct {
	Colors       []string `json:"colors"`
	RecentColors []string `json:"recent_colors"`
}

// LoadPalette reads the palette at path. On any failure it returns the
// default palette along with the reason.
func LoadPalette(path string) (*state.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return state.NewPalette(), fmt.Errorf("read palette: %w", err)
	}
	var doc paletteDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return state.NewPalette(), fmt.Errorf("parse palette %s: %w", path, err)
	}
	if doc.Colors == nil {
		doc.Colors = state.NewPalette().Colors()
	}
	p := state.BuildPalette(doc.Colors, doc.RecentColors)
	logrus.WithField("component", "store").WithField("path", path).
		WithField("recent", len(p.Recent())).Debug("palette loaded")
	return p, nil
}

func SavePalette(path string, p *state.Palette) error {
	doc := paletteDoc{Colors: p.Colors(), RecentColors: p.Recent()}
	if doc.RecentColors == nil {
		doc.RecentColors = []string{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode palette: %w", err)
	}
	return writeAtomic(path, data)
}
