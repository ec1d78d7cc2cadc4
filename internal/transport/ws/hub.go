package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans messages out to the connections subscribed to a topic
type Hub struct {
	// Topic -> connections
	topics map[string]map[*Connection]bool

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	Topic  string
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	Topic   string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		topics:     make(map[string]map[*Connection]bool),
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
			if h.topics[conn.Topic] == nil {
				h.topics[conn.Topic] = make(map[*Connection]bool)
			}
			h.topics[conn.Topic][conn] = true
			log.Printf("User %s subscribed to %s", conn.UserID, conn.Topic)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if subs, ok := h.topics[conn.Topic]; ok && subs[conn] {
				delete(subs, conn)
				close(conn.Send)
				if len(subs) == 0 {
					delete(h.topics, conn.Topic)
				}
				log.Printf("User %s unsubscribed from %s", conn.UserID, conn.Topic)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.topics[msg.Topic] {
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

// Subscribers returns how many connections listen on topic
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Publish sends a message to every subscriber of topic (implements service.Broadcaster)
func (h *Hub) Publish(topic string, msgType string, payload interface{}) {
	h.broadcast <- &BroadcastMessage{
		Topic:   topic,
		Message: NewMessage(MessageType(msgType), payload),
	}
}

// NewMessage wraps payload in the envelope
func NewMessage(msgType MessageType, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{
		Type:    msgType,
		Payload: data,
	}
}
