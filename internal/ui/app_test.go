package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
)

func TestZoomShortcuts(t *testing.T) {
	var h fyne.ShortcutHandler
	var in, out int
	bindZoom(&h, func() { in++ }, func() { out++ })

	ctrl := fyne.KeyModifierShortcutDefault
	h.TypedShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyEqual, Modifier: ctrl})
	h.TypedShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyPlus, Modifier: ctrl})
	h.TypedShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyPlus, Modifier: ctrl | fyne.KeyModifierShift})
	h.TypedShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: ctrl})

	assert.Equal(t, 3, in)
	assert.Equal(t, 1, out)
}

type brokenWriter struct {
	uri fyne.URI
}

func (w brokenWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w brokenWriter) Close() error                { return errors.New("disk went away") }
func (w brokenWriter) URI() fyne.URI               { return w.uri }

func TestSaveToURILogsCloseError(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	path := filepath.Join(t.TempDir(), "yoke.json")
	ed := state.NewEditor(4, 0)
	ed.Paint(state.Cell{Row: 1, Col: 1}, "#102030")
	ed.EndStroke()

	got, err := saveToURI(brokenWriter{uri: storage.NewFileURI(path)}, ed)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
			assert.Contains(t, e.Message, "disk went away")
		}
	}
	assert.True(t, warned, "close error logged")

	_, err = os.Stat(path)
	require.NoError(t, err, "pattern saved despite the close error")
	g, _, err := store.LoadProject(path, 4)
	require.NoError(t, err)
	hex, _ := g.At(state.Cell{Row: 1, Col: 1})
	assert.Equal(t, "#102030", hex)
}
