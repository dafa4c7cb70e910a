package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Owner message types
const (
	MsgResponseReceived MessageType = "response_received"
	MsgResponseScored   MessageType = "response_scored"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages owner WebSocket connections per form. Owners subscribe to a
// form to watch submissions arrive live.
type Hub struct {
	// form -> connections watching it
	ownerConns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	log logrus.FieldLogger
}

// Connection represents a WebSocket connection
type Connection struct {
	FormID  string
	OwnerID string
	Send    chan []byte
	Hub     *Hub
}

// BroadcastMessage is a message to broadcast to a form's watchers
type BroadcastMessage struct {
	FormID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log logrus.FieldLogger) *Hub {
	h := &Hub{
		ownerConns: make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.ownerConns[conn.FormID] == nil {
				h.ownerConns[conn.FormID] = make(map[*Connection]bool)
			}
			h.ownerConns[conn.FormID][conn] = true
			h.mu.Unlock()
			if h.log != nil {
				h.log.WithFields(logrus.Fields{"owner": conn.OwnerID, "form": conn.FormID}).Info("owner connected")
			}

		case conn := <-h.unregister:
			h.mu.Lock()
			if watchers, ok := h.ownerConns[conn.FormID]; ok {
				if watchers[conn] {
					delete(watchers, conn)
					close(conn.Send)
					if len(watchers) == 0 {
						delete(h.ownerConns, conn.FormID)
					}
				}
			}
			h.mu.Unlock()
			if h.log != nil {
				h.log.WithFields(logrus.Fields{"owner": conn.OwnerID, "form": conn.FormID}).Info("owner disconnected")
			}

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.ownerConns[msg.FormID] {
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

// BroadcastToOwner sends a message to everyone watching a form (implements
// service.Broadcaster)
func (h *Hub) BroadcastToOwner(formID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		FormID: formID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
