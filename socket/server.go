package socket

import (
	"log"

	"talkboard_server/models"

	socketio "github.com/googollee/go-socket.io"
)

// BoardRoom is the room every connected client joins; board snapshots are
// broadcast to it after each mutation.
const BoardRoom = "board"

// Hub wraps the Socket.IO server that carries the live board feed.
type Hub struct {
	server *socketio.Server
}

// NewHub initializes the Socket.IO server and its connection handlers
func NewHub() *Hub {
	server := socketio.NewServer(nil)

	// Every client gets the board feed; there is nothing else to subscribe to
	server.OnConnect("/", func(c socketio.Conn) error {
		c.Join(BoardRoom)
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	return &Hub{server: server}
}

// Server exposes the underlying Socket.IO server for mounting on the router.
func (h *Hub) Server() *socketio.Server {
	return h.server
}

// Run serves socket events until Close is called.
func (h *Hub) Run() {
	if err := h.server.Serve(); err != nil {
		log.Printf("❌ Socket server stopped: %v", err)
	}
}

// Close tears the socket server down.
func (h *Hub) Close() error {
	return h.server.Close()
}

// NotifySnapshot pushes the full message snapshot to every client in the
// board room. Clients recompute their view from it, same as the REST path.
func (h *Hub) NotifySnapshot(snapshot []models.Message) {
	h.server.BroadcastToRoom("/", BoardRoom, "board:snapshot", snapshot)
}
