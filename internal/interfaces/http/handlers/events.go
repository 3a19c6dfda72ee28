// internal/interfaces/http/handlers/events.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/interfaces/http/events"
	"github.com/your-org/storefront-state/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-state/internal/store"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// ActionSnapshot labels the first event of every connection
const ActionSnapshot store.Action = "snapshot"

// EventsHandler streams store changes to connected screens
type EventsHandler struct {
	store    *store.Store
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   *logrus.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(s *store.Store, hub *events.Hub, cfg *config.Config, logger *logrus.Logger) *EventsHandler {
	return &EventsHandler{
		store:  s,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.IsOriginAllowed(origin, cfg.Security.CORSAllowedOrigins)
			},
		},
	}
}

// Stream handles GET /events. The first message is the current state; every
// store transition after that arrives as its own event.
func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	// Register before the snapshot so no change falls between the two
	client := &events.Client{Conn: conn, Send: make(chan []byte, sendBuffer)}
	h.hub.Register(client)

	snapshot, err := json.Marshal(events.Event{
		Action:    ActionSnapshot,
		State:     h.store.Snapshot(),
		Timestamp: time.Now().UnixMilli(),
	})
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = conn.WriteMessage(websocket.TextMessage, snapshot)
	}
	if err != nil {
		h.logger.WithError(err).Warn("Failed to send state snapshot")
		h.hub.Unregister(client)
		conn.Close()
		return
	}

	h.logger.WithField("client_ip", c.ClientIP()).Info("Event stream client connected")

	go h.writePump(client)
	h.readPump(client)

	h.logger.WithField("client_ip", c.ClientIP()).Info("Event stream client disconnected")
}

// readPump discards inbound messages and returns once the peer goes away
func (h *EventsHandler) readPump(client *events.Client) {
	defer func() {
		h.hub.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards queued events and keeps the connection alive with pings.
// It returns once the hub closes Send.
func (h *EventsHandler) writePump(client *events.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
