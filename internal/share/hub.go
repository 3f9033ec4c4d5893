package share

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
)

const (
	sendBuffer = 64
	writeWait  = 5 * time.Second
)

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub mirrors one board to any number of read-only websocket viewers. It keeps
// its own copy of the project so late joiners get the current state without
// touching the editor from another goroutine.
type Hub struct {
	mu       sync.Mutex
	viewers  map[*viewer]struct{}
	project  store.ProjectDoc
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

func NewHub() *Hub {
	return &Hub{
		viewers: make(map[*viewer]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logrus.WithField("component", "share"),
	}
}

// ServeHTTP upgrades the request and streams updates until the viewer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	v := &viewer{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	snap := h.project
	if data, err := encode(Message{Type: TypeSnapshot, Origin: state.SessionID(), Project: &snap}); err == nil {
		v.send <- data
	}
	h.viewers[v] = struct{}{}
	h.mu.Unlock()
	h.log.Infof("viewer connected from %s", r.RemoteAddr)

	go h.writeLoop(v)
	// Viewers never send anything; reading only notices when they go away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(v)
	h.log.Infof("viewer %s disconnected", r.RemoteAddr)
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.conn.Close()
	for data := range v.send {
		v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debugf("write to viewer failed: %v", err)
			h.drop(v)
			return
		}
	}
}

func (h *Hub) drop(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		close(v.send)
	}
}

// Viewers reports how many viewers are connected.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// PublishSnapshot replaces the mirrored project and resends it to everyone.
func (h *Hub) PublishSnapshot(doc store.ProjectDoc) {
	h.mu.Lock()
	h.project = doc
	h.mu.Unlock()
	h.broadcast(Message{Type: TypeSnapshot, Project: &doc})
}

// PublishCells applies cell updates to the mirror and forwards them.
func (h *Hub) PublishCells(cells []state.CellColor) {
	if len(cells) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range cells {
		if c.Row >= 0 && c.Row < len(h.project.GridData) && c.Col >= 0 && c.Col < len(h.project.GridData[c.Row]) {
			h.project.GridData[c.Row][c.Col] = c.Color
		}
	}
	h.mu.Unlock()
	h.broadcast(Message{Type: TypeCells, Cells: cells})
}

// PublishMarks replaces the mirrored mark set.
func (h *Hub) PublishMarks(marks [][2]int) {
	if marks == nil {
		marks = [][2]int{}
	}
	h.mu.Lock()
	h.project.MarkedTiles = marks
	h.mu.Unlock()
	h.broadcast(Message{Type: TypeMarks, Marks: marks})
}

// broadcast never blocks the caller; a viewer whose buffer is full is dropped.
func (h *Hub) broadcast(msg Message) {
	msg.Origin = state.SessionID()
	data, err := encode(msg)
	if err != nil {
		h.log.Errorf("encode %s message: %v", msg.Type, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
			h.log.Warn("viewer too slow, dropping")
			delete(h.viewers, v)
			close(v.send)
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		delete(h.viewers, v)
		close(v.send)
	}
}

func encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
