// Package ws relays chat events between the two participants of a room
// over WebSocket. Connections are upgraded by the HTTP layer with
// gobwas/ws; this package owns the per-room registry, the read loop, and
// the fan-out of message and typing events.
package ws

import (
	"net"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Conn is one participant's socket. The write mutex serialises outbound
// frames so broadcasts from different goroutines do not interleave bytes.
type Conn struct {
	UserID string
	RoomID string

	netConn net.Conn
	writeMu sync.Mutex
}

// WriteMessage sends a WebSocket text frame to this connection.
func (c *Conn) WriteMessage(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return wsutil.WriteServerMessage(c.netConn, ws.OpText, data)
}

// Close closes the underlying network connection.
func (c *Conn) Close() error {
	return c.netConn.Close()
}

// Hub is a thread-safe registry of live connections grouped by room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Conn]struct{})}
}

// Join registers a connection under its room.
func (h *Hub) Join(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.RoomID]
	if !ok {
		room = make(map[*Conn]struct{})
		h.rooms[c.RoomID] = room
	}
	room[c] = struct{}{}
}

// Leave removes a connection and drops the room entry once empty. The
// connection itself is not closed; the read loop owns that.
func (h *Hub) Leave(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.RoomID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.RoomID)
	}
}

// Broadcast sends data to every connection in the room except the given
// one; pass nil to include everyone. Write errors on individual
// connections are ignored, their read loops will notice the dead socket.
func (h *Hub) Broadcast(roomID string, data []byte, except *Conn) {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		if c != except {
			conns = append(conns, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range conns {
		_ = c.WriteMessage(data)
	}
}

// Count returns the number of live connections across all rooms.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, room := range h.rooms {
		n += len(room)
	}
	return n
}
