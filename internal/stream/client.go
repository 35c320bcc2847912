package stream

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 4096
)

// Client represents a single WebSocket peer with its ticker subscriptions.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub

	subMu   sync.RWMutex
	tickers map[string]bool
}

// clientCommand is the inbound control message: subscribe to or
// unsubscribe from a ticker's frame updates.
type clientCommand struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Ticker string `json:"ticker"`
}

// HandleConn registers an upgraded connection with the hub and starts
// its pumps. initialTicker, when non-empty, is subscribed immediately
// so `/ws?ticker=X` works without a follow-up command.
func (h *Hub) HandleConn(conn *websocket.Conn, initialTicker string) {
	client := &Client{
		conn:    conn,
		send:    make(chan []byte, 256),
		hub:     h,
		tickers: make(map[string]bool),
	}
	if initialTicker != "" {
		client.tickers[initialTicker] = true
	}

	conn.EnableWriteCompression(true)
	h.register(client)

	go client.writePump()
	go client.readPump()
}

func (c *Client) subscribed(ticker string) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.tickers[ticker]
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			// Write coalescing: batch queued messages into a single
			// frame with newline separators.
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(msg)
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(readLimit)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			log.Printf("[stream] bad client command: %v", err)
			continue
		}

		c.subMu.Lock()
		switch cmd.Action {
		case "subscribe":
			if cmd.Ticker != "" {
				c.tickers[cmd.Ticker] = true
			}
		case "unsubscribe":
			delete(c.tickers, cmd.Ticker)
		}
		c.subMu.Unlock()
	}
}
