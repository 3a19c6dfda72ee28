// internal/interfaces/http/events/hub.go
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/store"
)

// Event is what connected screens receive after each store transition
type Event struct {
	Action    store.Action `json:"action"`
	State     store.State  `json:"state"`
	Timestamp int64        `json:"timestamp"` // unix millis
}

// Client is one connected screen
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans store changes out to every connected client
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
	logger     *logrus.Logger
}

// NewHub creates a hub; call Run to start it
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		stop:       make(chan struct{}),
		logger:     logger,
	}
}

// Run dispatches registrations and broadcasts until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					// slow client, drop it
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop ends Run and disconnects every client
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

// Register adds a client
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stop:
	}
}

// Unregister removes a client and closes its Send channel
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Observe is a store observer. Every event carries the full state, so a
// dropped event is repaired by the next one.
func (h *Hub) Observe(change store.Change) {
	data, err := json.Marshal(Event{
		Action:    change.Action,
		State:     change.State,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode store event")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.WithField("action", change.Action).Warn("Event queue full, dropping store event")
	}
}
