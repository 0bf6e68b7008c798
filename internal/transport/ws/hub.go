package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAssessmentReady MessageType = "assessment_ready"
	MsgStageUnlocked   MessageType = "stage_unlocked"
	MsgProgressUpdate  MessageType = "progress_update"
	MsgError           MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per idea. A user may watch the same
// idea from several tabs, so an idea maps to a set of connections.
type Hub struct {
	conns map[string]map[*Connection]bool // ideaID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	IdeaID string
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	IdeaID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.IdeaID] == nil {
				h.conns[conn.IdeaID] = make(map[*Connection]bool)
			}
			h.conns[conn.IdeaID][conn] = true
			h.mu.Unlock()
			log.Printf("User %s watching idea %s", conn.UserID, conn.IdeaID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.IdeaID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if len(conns) == 0 {
					delete(h.conns, conn.IdeaID)
				}
				log.Printf("User %s stopped watching idea %s", conn.UserID, conn.IdeaID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.IdeaID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToIdea sends a message to everyone watching an idea (implements
// service.Broadcaster)
func (h *Hub) BroadcastToIdea(ideaID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		IdeaID: ideaID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
