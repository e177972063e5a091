package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// EventHandler dispatches inbound push-channel events.
type EventHandler interface {
	HandleSetTimer(ctx context.Context, raw json.RawMessage)
	HandleDeleteTimer(ctx context.Context, raw json.RawMessage)
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one connected push-channel peer.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	events EventHandler
	logger *zap.Logger
}

// readPump relays inbound frames to the event handler until the
// connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && c.logger != nil {
				c.logger.Warn("read error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			if c.logger != nil {
				c.logger.Warn("malformed frame", zap.String("client_id", c.id), zap.Error(err))
			}
			continue
		}

		ctx := context.Background()
		switch frame.Event {
		case EventSetTimer:
			c.events.HandleSetTimer(ctx, frame.Data)
		case EventDeleteTimer:
			c.events.HandleDeleteTimer(ctx, frame.Data)
		default:
			if c.logger != nil {
				c.logger.Debug("unknown event", zap.String("event", frame.Event), zap.String("client_id", c.id))
			}
		}
	}
}

// writePump drains the send queue onto the connection, keeping the peer
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
