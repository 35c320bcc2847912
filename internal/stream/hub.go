// Package stream pushes freshly computed indicator frames to connected
// dashboard clients over WebSocket. Clients subscribe per ticker; when
// new history lands for a ticker the serving layer recomputes and the
// hub fans the frame batch out to that ticker's subscribers.
package stream

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Envelope is the wire format for one broadcast: the ticker plus the
// frame payload as raw JSON (kept opaque so nullable indicator fields
// survive untouched).
type Envelope struct {
	Ticker string          `json:"ticker"`
	Frames json.RawMessage `json:"frames"`
	TS     string          `json:"ts"`
}

// Hub manages WebSocket clients and per-ticker fan-out.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	// onCount, when set, receives the client count after every
	// register/unregister (wired to the ws_clients gauge).
	onCount func(n int)
}

// NewHub creates a hub. onCount may be nil.
func NewHub(onCount func(n int)) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		onCount: onCount,
	}
}

// Broadcast sends a frame payload for a ticker to every subscribed
// client. Slow clients are skipped, not waited on — a stalled browser
// tab must never back-pressure the compute path.
func (h *Hub) Broadcast(ticker string, frames []byte) {
	envelope, err := json.Marshal(Envelope{
		Ticker: ticker,
		Frames: frames,
		TS:     time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Printf("[stream] envelope marshal: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !client.subscribed(ticker) {
			continue
		}
		select {
		case client.send <- envelope:
		default:
			// drop if the client's queue is full
		}
	}
}

// register adds a client to the hub.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()

	log.Printf("[stream] ws client connected (%d total)", count)
	if h.onCount != nil {
		h.onCount(count)
	}
}

// remove detaches a client and closes its send queue.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()

	close(c.send)
	log.Printf("[stream] ws client disconnected (%d total)", count)
	if h.onCount != nil {
		h.onCount(count)
	}
}

// ClientCount returns the number of connected WS clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
