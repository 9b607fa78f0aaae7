package ws

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"horizonx-probe/internal/logger"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

// NewHandler accepts connections without an Origin header or from the
// serving host. Authentication happens in middleware before Serve runs.
func NewHandler(hub *Hub, log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			u, err := url.Parse(origin)
			if err != nil || u.Host != r.Host {
				log.Warn("ws: origin rejected", "origin", origin)
				return false
			}
			return true
		},
	}

	return &Handler{hub: hub, upgrader: upgrader, log: log}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.hub.ctx.Err() != nil {
		http.Error(w, "stream unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	c := NewClient(h.hub, conn, h.log)
	select {
	case h.hub.register <- c:
	case <-h.hub.ctx.Done():
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}
