package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/logging"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type FeedHandler struct {
	hub *ws.Hub
}

func NewFeedHandler(hub *ws.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// AlertFeed upgrades the connection and streams every fired alert
// @Summary Live alert feed
// @Description Websocket stream of alert events as they are recorded
// @Tags alerts
// @Router /ws/alerts [get]
func (h *FeedHandler) AlertFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error(c).Err(err).Msg("Websocket upgrade failed")
		return
	}

	h.hub.Register(conn)

	// Drain client messages; a read error means the client went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.hub.Unregister(conn)
				return
			}
		}
	}()
}
