// Package ws implements the live-timer push channel: a websocket hub
// fanning out timer updates to every connected client.
package ws

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/timerpro/timer-api/internal/service"
)

// Frame is the wire format on the push channel: an event name and its
// payload.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks connected clients and fans frames out to all of them.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	metrics    *service.MetricsService
	logger     *zap.Logger
}

// NewHub constructs a hub; Run must be started for it to serve traffic.
func NewHub(metrics *service.MetricsService, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		metrics:    metrics,
		logger:     logger,
	}
}

// Run owns the client set. It exits when the context is cancelled,
// closing every client's send queue.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.metrics.ClientConnected()
			if h.logger != nil {
				h.logger.Info("client connected", zap.String("client_id", client.id))
			}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.metrics.ClientDisconnected()
				if h.logger != nil {
					h.logger.Info("client disconnected", zap.String("client_id", client.id))
				}
			}
		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer: drop the client rather than
					// blocking everyone else.
					delete(h.clients, client)
					close(client.send)
					h.metrics.ClientDisconnected()
				}
			}
		}
	}
}

// Broadcast sends an event frame to every connected client.
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		if h.logger != nil {
			h.logger.Error("marshal broadcast frame", zap.String("event", event), zap.Error(err))
		}
		return
	}
	h.broadcast <- payload
}
