package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"KnitBoard/internal/state"
)

const (
	pageW, pageH = 210.0, 297.0
	margin       = 15.0
	labelBand    = 8.0
	labelEvery   = 10
)

// ChartOptions controls the printed chart.
type ChartOptions struct {
	Title string
	// HideMarks leaves completed stitches undotted.
	HideMarks bool
}

// ChartPDF renders the grid as an A4 knitting chart and writes it to path.
func ChartPDF(path string, g *state.Grid, m *state.Marks, opts ChartOptions) error {
	p := chart(g, m, opts)
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return nil
}

// WriteChart is ChartPDF for an arbitrary writer.
func WriteChart(w io.Writer, g *state.Grid, m *state.Marks, opts ChartOptions) error {
	p := chart(g, m, opts)
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// TitleFor names a chart after its pattern file, without directory or extension.
func TitleFor(projectPath string) string {
	base := filepath.Base(projectPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CellSize is the printed side of one stitch in millimetres for an n×n chart.
func CellSize(n int) float64 {
	avail := min(pageW-2*margin-labelBand, pageH-2*margin-2*labelBand)
	return avail / float64(max(n, 1))
}

func chart(g *state.Grid, m *state.Marks, opts ChartOptions) *gofpdf.Fpdf {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(opts.Title, true)
	p.AddPage()

	top := margin
	if opts.Title != "" {
		p.SetFont("Helvetica", "B", 12)
		p.Text(margin, margin, opts.Title)
		top += labelBand
	}

	n := g.Size()
	size := CellSize(n)
	originX := margin + labelBand
	originY := top + labelBand

	p.SetFont("Helvetica", "", 6)
	p.SetTextColor(80, 80, 80)
	for i := labelEvery - 1; i < n; i += labelEvery {
		label := strconv.Itoa(i + 1)
		p.Text(originX+float64(i)*size, originY-1.5, label)
		p.Text(margin, originY+float64(i+1)*size, label)
	}

	p.SetLineWidth(0.05)
	p.SetDrawColor(74, 74, 74)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			hex, _ := g.At(state.Cell{Row: r, Col: c})
			red, green, blue := rgb(hex)
			p.SetFillColor(red, green, blue)
			p.Rect(originX+float64(c)*size, originY+float64(r)*size, size, size, "FD")
		}
	}

	if m != nil && !opts.HideMarks {
		p.SetFillColor(30, 30, 30)
		for _, cell := range m.Cells() {
			cx := originX + (float64(cell.Col)+0.5)*size
			cy := originY + (float64(cell.Row)+0.5)*size
			p.Circle(cx, cy, size/5, "F")
		}
	}
	return p
}

func rgb(hex string) (int, int, int) {
	r, g, b, ok := state.RGB255(hex)
	if !ok {
		return 255, 255, 255
	}
	return int(r), int(g), int(b)
}
