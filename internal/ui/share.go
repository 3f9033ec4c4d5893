package ui

import (
	"github.com/sirupsen/logrus"

	"KnitBoard/internal/share"
	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
)

// publishTo forwards every editor change to a share hub.
func publishTo(ed *state.Editor, hub *share.Hub) func(state.Change) {
	return func(ch state.Change) {
		if ch.Full {
			hub.PublishSnapshot(store.Snapshot(ed.Grid(), ed.Marks()))
			return
		}
		if len(ch.Cells) > 0 {
			cells := make([]state.CellColor, 0, len(ch.Cells))
			for _, c := range ch.Cells {
				hex, ok := ed.Grid().At(c)
				if ok {
					cells = append(cells, state.CellColor{Cell: c, Color: hex})
				}
			}
			hub.PublishCells(cells)
		}
		if len(ch.Marks) > 0 {
			hub.PublishMarks(store.MarkPairs(ed.Marks()))
		}
	}
}

// applyRemote mirrors a message from a host into the local editor. It must
// run on the UI thread.
func applyRemote(ed *state.Editor, msg share.Message) {
	switch msg.Type {
	case share.TypeSnapshot:
		if msg.Project == nil {
			return
		}
		n := msg.Project.GridSize
		if n < 1 {
			n = len(msg.Project.GridData)
		}
		if n < 1 {
			return
		}
		if n > state.MaxGridSize {
			logrus.WithField("component", "ui").Warnf("ignoring %d×%d snapshot, limit is %d", n, n, state.MaxGridSize)
			return
		}
		g, m := msg.Project.Restore(n)
		ed.Load(g, m)
	case share.TypeCells:
		ed.ApplyCells(msg.Cells)
	case share.TypeMarks:
		ed.SetMarks(msg.MarkCells())
	}
}
