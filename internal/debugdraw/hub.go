package debugdraw

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/udisondev/scenequery/internal/model"
)

const (
	writeWait = 5 * time.Second
	// Frames queued per client before new frames are dropped for it.
	clientQueueSize = 8
)

// Frame is one batch of markers sent to viewers.
type Frame struct {
	Seq     uint64         `json:"seq"`
	Markers []model.Marker `json:"markers"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub streams marker frames to websocket viewers.
// DrawMarkers never blocks: slow viewers miss frames instead.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]*client
	latest  []byte
	seq     uint64

	upgrader websocket.Upgrader
}

// NewHub creates a hub with no viewers.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Routes registers the hub endpoints on r.
func (h *Hub) Routes(r *mux.Router) {
	r.HandleFunc("/ws", h.ServeWS)
	r.HandleFunc("/healthz", h.serveHealth).Methods(http.MethodGet)
}

// DrawMarkers implements scenequery.DebugDrawer.
func (h *Hub) DrawMarkers(markers []model.Marker) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	data, err := json.Marshal(Frame{Seq: h.seq, Markers: markers})
	if err != nil {
		slog.Error("encoding debug frame", "error", err)
		return
	}
	h.latest = data

	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[uuid.UUID]*client)
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
}

// ServeWS upgrades the request and streams frames until the viewer leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("debug viewer upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, clientQueueSize)}
	h.register(c)
	slog.Debug("debug viewer connected", "client", c.id, "remote", r.RemoteAddr)

	go h.writeLoop(c)

	// Viewers never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(c)
	slog.Debug("debug viewer disconnected", "client", c.id)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.id] = c
	if h.latest != nil {
		c.send <- h.latest
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	if ok {
		close(c.send)
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			slog.Debug("debug viewer write deadline failed", "client", c.id, "error", err)
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Debug("debug viewer write failed", "client", c.id, "error", err)
			return
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		slog.Debug("debug viewer close failed", "client", c.id, "error", err)
	}
}

func (h *Hub) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]int{"viewers": h.Clients()}); err != nil {
		slog.Debug("writing debug health", "error", err)
	}
}
