// Package hub fans messages out to every connected websocket.
package hub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Subscribers don't send anything but control frames.
	maxMessageSize = 512
)

// Hub maintains the set of active connections and broadcasts messages to the
// connections.
type Hub struct {
	// Registered connections.
	connections map[*connection]struct{}

	// Messages to send to everyone.
	broadcast chan []byte

	// Register requests from the connections.
	register chan *connection

	// Unregister requests from connections.
	unregister chan *connection

	// count requests, answered with the number of connections.
	count chan chan int

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a new Hub and starts it in a background Go routine.
func New() *Hub {
	h := &Hub{
		broadcast:   make(chan []byte),
		register:    make(chan *connection),
		unregister:  make(chan *connection),
		count:       make(chan chan int),
		done:        make(chan struct{}),
		connections: make(map[*connection]struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.connections[c] = struct{}{}
		case c := <-h.unregister:
			h.deleteConn(c)
		case msg := <-h.broadcast:
			for c := range h.connections {
				select {
				case c.send <- msg:
				default:
					// Too slow to keep up, drop them.
					h.deleteConn(c)
				}
			}
		case resp := <-h.count:
			resp <- len(h.connections)
		case <-h.done:
			for c := range h.connections {
				h.deleteConn(c)
			}
			return
		}
	}
}

func (h *Hub) deleteConn(c *connection) {
	if _, ok := h.connections[c]; !ok {
		return
	}
	delete(h.connections, c)
	close(c.send)
}

// Broadcast sends a message to every connection. It's a no-op once the hub
// is closed.
func (h *Hub) Broadcast(msg interface{}) error {
	dat, err := encode(msg)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- dat:
	case <-h.done:
	}
	return nil
}

// Register hands ws over to the hub, which owns it from then on. hello, if
// not nil, is the first message sent on the connection, and is queued before
// any broadcast that happens after Register returns.
func (h *Hub) Register(ws *websocket.Conn, hello interface{}) error {
	conn := &connection{
		h:    h,
		send: make(chan []byte, 256),
		ws:   ws,
	}
	if hello != nil {
		dat, err := encode(hello)
		if err != nil {
			return err
		}
		conn.send <- dat
	}

	select {
	case h.register <- conn:
	case <-h.done:
		ws.Close()
		return fmt.Errorf("hub is closed")
	}
	go conn.writePump()
	go conn.readPump()
	return nil
}

// Len returns the number of registered connections.
func (h *Hub) Len() int {
	resp := make(chan int)
	select {
	case h.count <- resp:
		return <-resp
	case <-h.done:
		return 0
	}
}

// Close disconnects everyone and stops the hub. It's safe to call more than
// once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func encode(msg interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return buf.Bytes(), nil
}

// connection is a middleman between the websocket connection and the hub.
type connection struct {
	h *Hub

	// The websocket connection.
	ws *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte
}

// readPump only exists to process control frames and notice when the peer
// goes away.
func (c *connection) readPump() {
	defer func() {
		select {
		case c.h.unregister <- c:
		case <-c.h.done:
		}
		c.ws.Close()
	}()
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *connection) write(mt int, payload []byte) error {
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(mt, payload)
}

// writePump pumps messages from the hub to the websocket connection.
func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}
