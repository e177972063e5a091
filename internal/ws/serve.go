package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/timerpro/timer-api/pkg/middleware/requestid"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS layer; the channel is
	// open to any client, like the rest of the service.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve returns a gin handler upgrading GET /ws requests into
// push-channel clients.
func Serve(hub *Hub, events EventHandler, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			if logger != nil {
				logger.Warn("websocket upgrade failed", zap.Error(err))
			}
			return
		}

		client := &Client{
			id:     requestid.Value(c),
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, sendBuffer),
			events: events,
			logger: logger,
		}

		hub.register <- client
		go client.writePump()
		go client.readPump()
	}
}
