package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"

	"KnitBoard/internal/export"
	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
)

// exportChart asks where to put the PDF and writes the current pattern there.
func exportChart(win fyne.Window, ed *state.Editor, projectPath string, hideMarks bool, status func(string)) {
	log := logrus.WithField("component", "ui")
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			log.Errorf("export dialog: %v", err)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Warnf("close %s: %v", writer.URI().Name(), err)
			}
		}()

		opts := export.ChartOptions{Title: export.TitleFor(projectPath), HideMarks: hideMarks}
		if err := export.WriteChart(writer, ed.Grid(), ed.Marks(), opts); err != nil {
			log.Errorf("export chart: %v", err)
			status("Error exporting chart")
			return
		}
		status(fmt.Sprintf("Exported chart to %s", writer.URI().Name()))
	}, win)
	d.SetFileName("pattern.pdf")
	d.Show()
}

// saveProjectAs writes the pattern to a user-chosen file and returns its path
// through done so later saves go there too.
func saveProjectAs(win fyne.Window, ed *state.Editor, done func(path string)) {
	log := logrus.WithField("component", "ui")
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path, err := saveToURI(writer, ed)
		if err != nil {
			log.Errorf("save project as %s: %v", path, err)
			return
		}
		done(path)
	}, win)
	d.SetFileName(filepath.Base(store.DefaultProjectPath))
	d.Show()
}

// saveToURI closes the file the dialog created, then saves the pattern over it
// atomically. A failed close only leaves an empty file that the save replaces.
func saveToURI(writer fyne.URIWriteCloser, ed *state.Editor) (string, error) {
	path := writer.URI().Path()
	if err := writer.Close(); err != nil {
		logrus.WithField("component", "ui").Warnf("close %s: %v", path, err)
	}
	return path, store.SaveProject(path, ed.Grid(), ed.Marks())
}

// openProject loads a pattern from a user-chosen file into the editor,
// fitting it to the current grid size.
func openProject(win fyne.Window, ed *state.Editor, done func(path string)) {
	log := logrus.WithField("component", "ui")
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		doc, err := store.DecodeProject(reader)
		if err != nil {
			// Malformed files are ignored like at startup.
			log.Warnf("open %s: %v", reader.URI().Path(), err)
			return
		}
		g, m := doc.Restore(ed.Size())
		ed.Load(g, m)
		done(reader.URI().Path())
	}, win)
	d.Show()
}
