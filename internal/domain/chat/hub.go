package chat

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 512 * 1024 // 512 KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// WSEvent is a real-time event pushed to clients.
type WSEvent struct {
	Type           string      `json:"type"`
	ConversationID int64       `json:"conversation_id"`
	Payload        interface{} `json:"payload,omitempty"`
}

const (
	EventNewMessage = "new_message"
	EventTyping     = "typing"
	EventRead       = "read"
)

// clientKey identifies one connected principal. Users and vendors
// live in separate ID spaces, so the role is part of the key.
type clientKey struct {
	Role string
	ID   int64
}

// connection represents a single WebSocket client.
type connection struct {
	key   clientKey
	conn  *websocket.Conn
	send  chan []byte
	rooms map[int64]bool // subscribed conversation IDs
}

// Hub manages all active WebSocket connections on this instance.
type Hub struct {
	mu          sync.RWMutex
	connections map[clientKey]*connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[clientKey]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.key] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.key]; ok && existing == c {
		delete(h.connections, c.key)
		close(c.send)
	}
}

// SendToPrincipal delivers an event to one connected principal.
// Returns false if they are not connected or their buffer is full.
func (h *Hub) SendToPrincipal(role string, id int64, event *WSEvent) bool {
	data, err := json.Marshal(event)
	if err != nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.connections[clientKey{Role: role, ID: id}]
	if !ok {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// BroadcastToConversation sends an event to every connection
// subscribed to the conversation.
func (h *Hub) BroadcastToConversation(conversationID int64, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if c.rooms[conversationID] {
			select {
			case c.send <- data:
			default:
				// Client too slow — skip
			}
		}
	}
}

// ServeWS registers a new connection and starts read/write loops.
// Blocks until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, role string, principalID int64, initialConversations []int64) {
	c := &connection{
		key:   clientKey{Role: role, ID: principalID},
		conn:  conn,
		send:  make(chan []byte, 256),
		rooms: make(map[int64]bool),
	}
	for _, id := range initialConversations {
		c.rooms[id] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event struct {
			Type           string `json:"type"`
			ConversationID int64  `json:"conversation_id"`
		}
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		switch event.Type {
		case "subscribe":
			h.mu.Lock()
			c.rooms[event.ConversationID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.rooms, event.ConversationID)
			h.mu.Unlock()
		case "typing":
			h.BroadcastToConversation(event.ConversationID, &WSEvent{
				Type:           EventTyping,
				ConversationID: event.ConversationID,
				Payload: map[string]string{
					"sender": c.key.Role + ":" + strconv.FormatInt(c.key.ID, 10),
				},
			})
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
