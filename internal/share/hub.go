// Package share exposes a live board to other devices on the local network:
// a JSON snapshot API, PDF and PNG exports, a websocket feed of board
// changes, and mDNS discovery so viewers do not have to type an address.
package share

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

// boardMessage is the frame pushed to viewers, both on connect and on every
// broadcast.
type boardMessage struct {
	Type  string         `json:"type"`
	Board state.Snapshot `json:"board"`
}

func encodeBoard(snap state.Snapshot) ([]byte, error) {
	return json.Marshal(boardMessage{Type: "board", Board: snap})
}

// Hub maintains the set of connected viewers and fans board snapshots out to
// them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool

	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

func newHub(log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client, 8),
		unregister: make(chan *client, 8),
		broadcast:  make(chan []byte, 64),
		ctx:        ctx,
		cancel:     cancel,
		log:        log,
	}
}

// run is the hub's event loop. It owns the client set.
func (h *Hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case data := <-h.broadcast:
			h.send(data)
		}
	}
}

func (h *Hub) stop() {
	h.cancel()
}

// Broadcast queues the snapshot for delivery to every connected viewer. It
// never blocks; when the queue is full the frame is dropped, the next
// broadcast carries the newer state anyway.
func (h *Hub) Broadcast(snap state.Snapshot) {
	data, err := encodeBoard(snap)
	if err != nil {
		h.log.Error("encode board frame", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("broadcast queue full, frame dropped")
	}
}

// ViewerCount reports how many viewers are currently connected.
func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("viewer connected", zap.Int("viewers", n))
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.log.Info("viewer disconnected", zap.Int("viewers", len(h.clients)))
}

func (h *Hub) send(data []byte) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			// The viewer cannot keep up; drop the connection rather
			// than block the board.
			h.log.Warn("closing slow viewer")
			go func(c *client) {
				h.unregister <- c
				c.conn.Close()
			}(c)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		c.conn.Close()
		delete(h.clients, c)
	}
}
