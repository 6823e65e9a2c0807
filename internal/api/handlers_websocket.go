package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// upgrader accepts the same origins as the CORS middleware. Requests without
// an Origin header are not browsers and are always accepted.
func (s *Server) upgrader() *websocket.Upgrader {
	allowed := s.config.Security.AllowedOrigins
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, o := range allowed {
				if o == "*" || strings.EqualFold(o, origin) {
					return true
				}
			}
			return false
		},
	}
}

// HandleWebSocket streams host events. The optional types query parameter is
// a comma separated list of event types; host restricts events to one host id.
//
//	GET /api/v1/ws/hosts?types=host_removed&host=5c1a7e0b2f
func (s *Server) HandleWebSocket(c echo.Context) error {
	client := &Client{
		hub:    s.wsHub,
		send:   make(chan []byte, clientQueue),
		hostID: c.QueryParam("host"),
	}
	if types := c.QueryParam("types"); types != "" {
		client.types = make(map[string]bool)
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				client.types[t] = true
			}
		}
	}

	ws, err := s.upgrader().Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.WithError(err).Warn("WebSocket upgrade failed")
		return nil
	}
	client.conn = ws

	select {
	case s.wsHub.register <- client:
	case <-s.wsHub.done:
		return ws.Close()
	}

	go client.writePump()
	go client.readPump()

	return nil
}

// WebSocketStats is the body of GET /api/v1/ws/stats.
type WebSocketStats struct {
	ConnectedClients int    `json:"connected_clients"`
	Status           string `json:"status"`
}

// GetWebSocketStats returns WebSocket connection statistics
func (s *Server) GetWebSocketStats(c echo.Context) error {
	return c.JSON(http.StatusOK, WebSocketStats{
		ConnectedClients: s.wsHub.ClientCount(),
		Status:           "operational",
	})
}
