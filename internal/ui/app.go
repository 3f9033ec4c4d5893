package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"KnitBoard/internal/config"
	"KnitBoard/internal/share"
	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
)

const windowTitle = "Knitting Pattern Designer"

type editorWindow struct {
	cfg    config.Config
	win    fyne.Window
	editor *state.Editor
	state  *AppState
	board  *Board
	panel  *PalettePanel
	scroll *container.Scroll
	status *widget.Label

	projectPath string
	server      *share.Server
	log         *logrus.Entry
}

// RunApp opens the editor window and blocks until it is closed.
func RunApp(cfg config.Config) {
	log := logrus.WithField("component", "ui")
	a := app.New()
	w := &editorWindow{
		cfg:         cfg,
		win:         a.NewWindow(windowTitle),
		status:      widget.NewLabel("Ready"),
		projectPath: cfg.ProjectPath,
		log:         log,
	}

	palette, err := store.LoadPalette(cfg.PalettePath)
	logLoadError(log, "palette", err)
	w.state = NewAppState(palette)

	w.editor = state.NewEditor(cfg.GridSize, cfg.UndoLimit)
	g, m, err := store.LoadProject(cfg.ProjectPath, cfg.GridSize)
	logLoadError(log, "project", err)
	w.editor.Load(g, m)

	w.board = NewBoard(w.editor, state.NewZoom(cfg.TileSize, cfg.TileMin, cfg.TileMax), w.state)
	w.scroll = container.NewScroll(w.board)
	w.board.OnZoom = func(percent int) {
		w.panel.SetZoom(percent)
		w.scroll.Refresh()
	}

	w.panel = NewPalettePanel(w.state)
	w.panel.OnEdit = w.editSlot
	w.panel.OnChanged = w.savePalette
	w.panel.OnZoomIn = w.board.ZoomIn
	w.panel.OnZoomOut = w.board.ZoomOut
	w.panel.OnClear = w.confirmClear
	left := container.NewVScroll(w.panel.Build())
	left.SetMinSize(fyne.NewSize(170, 0))

	if cfg.SharePort > 0 {
		w.startSharing(cfg.SharePort)
	}

	w.win.SetContent(container.NewBorder(nil, w.status, left, nil, w.scroll))
	w.win.SetMainMenu(w.buildMenu())
	w.bindShortcuts()
	w.win.SetCloseIntercept(func() {
		w.saveProject()
		w.stopSharing()
		w.win.Close()
	})
	w.win.Resize(fyne.NewSize(900, 760))
	w.win.ShowAndRun()
}

func logLoadError(log *logrus.Entry, what string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("no saved %s, using defaults", what)
	default:
		log.Warnf("could not load %s, using defaults: %v", what, err)
	}
}

func (w *editorWindow) setStatus(text string) {
	w.status.SetText(text)
}

func (w *editorWindow) buildMenu() *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Pattern…", func() {
			openProject(w.win, w.editor, func(path string) {
				w.projectPath = path
				w.afterLoad()
				w.setStatus("Opened " + path)
			})
		}),
		&fyne.MenuItem{Label: "Save", Shortcut: saveShortcut, Action: w.saveProject},
		fyne.NewMenuItem("Save Pattern As…", func() {
			saveProjectAs(w.win, w.editor, func(path string) {
				w.projectPath = path
				w.setStatus("Saved " + path)
			})
		}),
		fyne.NewMenuItem("Export Chart PDF…", func() {
			exportChart(w.win, w.editor, w.projectPath, false, w.setStatus)
		}),
		fyne.NewMenuItem("Export Chart PDF without Marks…", func() {
			exportChart(w.win, w.editor, w.projectPath, true, w.setStatus)
		}),
	)
	edit := fyne.NewMenu("Edit",
		&fyne.MenuItem{Label: "Undo", Shortcut: undoShortcut, Action: w.undo},
		fyne.NewMenuItemSeparator(),
		&fyne.MenuItem{Label: "Cut", Shortcut: &fyne.ShortcutCut{}, Action: w.cut},
		&fyne.MenuItem{Label: "Copy", Shortcut: &fyne.ShortcutCopy{}, Action: w.copy},
		&fyne.MenuItem{Label: "Paste", Shortcut: &fyne.ShortcutPaste{}, Action: w.paste},
		fyne.NewMenuItem("Deselect", w.editor.Deselect),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Grid", w.confirmClear),
	)
	view := fyne.NewMenu("View",
		&fyne.MenuItem{Label: "Zoom In", Shortcut: zoomInShortcuts[0], Action: w.board.ZoomIn},
		&fyne.MenuItem{Label: "Zoom Out", Shortcut: zoomOutShortcut, Action: w.board.ZoomOut},
		fyne.NewMenuItem("Toggle Mark Mode", w.toggleTool),
	)
	return fyne.NewMainMenu(file, edit, view)
}

var (
	saveShortcut    = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	undoShortcut    = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	zoomOutShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: fyne.KeyModifierShortcutDefault}
	// Ctrl+= is Ctrl++ without Shift on most layouts; keypads send KeyPlus.
	zoomInShortcuts = []*desktop.CustomShortcut{
		{KeyName: fyne.KeyEqual, Modifier: fyne.KeyModifierShortcutDefault},
		{KeyName: fyne.KeyPlus, Modifier: fyne.KeyModifierShortcutDefault},
		{KeyName: fyne.KeyPlus, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
	}
)

type shortcutAdder interface {
	AddShortcut(fyne.Shortcut, func(fyne.Shortcut))
}

// bindZoom adds the zoom shortcuts to c, usually a window canvas.
func bindZoom(c shortcutAdder, in, out func()) {
	for _, sc := range zoomInShortcuts {
		c.AddShortcut(sc, func(fyne.Shortcut) { in() })
	}
	c.AddShortcut(zoomOutShortcut, func(fyne.Shortcut) { out() })
}

func (w *editorWindow) bindShortcuts() {
	c := w.win.Canvas()
	c.AddShortcut(saveShortcut, func(fyne.Shortcut) { w.saveProject() })
	c.AddShortcut(undoShortcut, func(fyne.Shortcut) { w.undo() })
	// Some drivers report Ctrl+Z as the standard undo shortcut instead.
	c.AddShortcut(&fyne.ShortcutUndo{}, func(fyne.Shortcut) { w.undo() })
	c.AddShortcut(&fyne.ShortcutCopy{}, func(fyne.Shortcut) { w.copy() })
	c.AddShortcut(&fyne.ShortcutCut{}, func(fyne.Shortcut) { w.cut() })
	c.AddShortcut(&fyne.ShortcutPaste{}, func(fyne.Shortcut) { w.paste() })
	bindZoom(c, w.board.ZoomIn, w.board.ZoomOut)
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			w.editor.Deselect()
		case fyne.KeyM:
			w.toggleTool()
		}
	})
}

func (w *editorWindow) undo() {
	if !w.editor.Undo() {
		w.setStatus("Nothing to undo")
	}
}

func (w *editorWindow) copy() {
	if err := w.editor.Copy(); err != nil {
		w.setStatus("Select an area with the right mouse button first")
		return
	}
	sel, _ := w.editor.Selection()
	w.setStatus(fmt.Sprintf("Copied %d×%d", sel.Height(), sel.Width()))
}

func (w *editorWindow) cut() {
	if err := w.editor.Cut(); err != nil {
		w.setStatus("Select an area with the right mouse button first")
		return
	}
	w.setStatus("Cut selection")
}

func (w *editorWindow) paste() {
	sel, ok := w.editor.Selection()
	anchor := w.state.PasteAnchor(sel, ok)
	n, err := w.editor.Paste(anchor)
	if err != nil {
		w.setStatus("Nothing to paste")
		return
	}
	w.setStatus(fmt.Sprintf("Pasted at row %d, column %d (%d changed)", anchor.Row+1, anchor.Col+1, n))
}

func (w *editorWindow) toggleTool() {
	t := w.state.ToggleTool()
	w.panel.SetTool(t)
	w.setStatus(t.String() + " mode")
}

func (w *editorWindow) confirmClear() {
	dialog.ShowConfirm("Clear Grid", "Reset every cell to the background colour? This can be undone.", func(ok bool) {
		if ok {
			w.editor.Clear()
		}
	}, w.win)
}

func (w *editorWindow) editSlot(i int) {
	title := fmt.Sprintf("Choose Color %d", i+1)
	ShowColorPicker(title, w.state.Palette.Color(i), w.win, func(hex string, ok bool) {
		if !ok {
			return
		}
		w.state.Palette.SetColor(i, hex)
		w.state.Palette.PushRecent(hex)
		w.panel.Refresh()
		w.savePalette()
	})
}

func (w *editorWindow) savePalette() {
	if err := store.SavePalette(w.cfg.PalettePath, w.state.Palette); err != nil {
		// Palette saves are best effort, like loads.
		w.log.Warnf("save palette: %v", err)
	}
}

func (w *editorWindow) saveProject() {
	if err := store.SaveProject(w.projectPath, w.editor.Grid(), w.editor.Marks()); err != nil {
		w.log.Warnf("save project: %v", err)
		w.setStatus("Could not save pattern")
		return
	}
	w.setStatus("Saved " + w.projectPath)
}

func (w *editorWindow) afterLoad() {
	w.scroll.Refresh()
}

func (w *editorWindow) startSharing(port int) {
	hub := share.NewHub()
	hub.PublishSnapshot(store.Snapshot(w.editor.Grid(), w.editor.Marks()))
	w.editor.Subscribe(publishTo(w.editor, hub))

	srv, err := share.Start(port, hub, true)
	if err != nil {
		w.log.Errorf("sharing disabled: %v", err)
		w.setStatus("Sharing failed: " + err.Error())
		return
	}
	w.server = srv
	w.setStatus("Sharing at " + srv.URL())
}

func (w *editorWindow) stopSharing() {
	if w.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := w.server.Close(ctx); err != nil {
		w.log.Warnf("stop sharing: %v", err)
	}
}

// RunViewer opens a read-only window that mirrors a shared board.
func RunViewer(cfg config.Config, url string) {
	log := logrus.WithField("component", "ui")
	a := app.New()
	win := a.NewWindow(windowTitle + " (viewing)")
	status := widget.NewLabel("Connecting to " + url)

	ed := state.NewEditor(cfg.GridSize, cfg.UndoLimit)
	st := NewAppState(nil)
	board := NewBoard(ed, state.NewZoom(cfg.TileSize, cfg.TileMin, cfg.TileMax), st)
	board.SetReadOnly(true)
	scroll := container.NewScroll(board)
	board.OnZoom = func(int) { scroll.Refresh() }
	ed.Subscribe(func(ch state.Change) {
		if ch.Full {
			scroll.Refresh()
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		err := share.Follow(ctx, url, func(msg share.Message) {
			fyne.Do(func() {
				applyRemote(ed, msg)
				status.SetText("Viewing " + url)
			})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warnf("viewer stopped: %v", err)
			fyne.Do(func() { status.SetText(fmt.Sprintf("Disconnected from host: %v", err)) })
		}
	}()

	win.SetContent(container.NewBorder(nil, status, nil, nil, scroll))
	bindZoom(win.Canvas(), board.ZoomIn, board.ZoomOut)
	win.SetOnClosed(cancel)
	win.Resize(fyne.NewSize(800, 700))
	win.ShowAndRun()
}
