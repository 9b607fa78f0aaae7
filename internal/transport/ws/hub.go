// Package ws streams snapshots to websocket clients.
package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
)

const EventSnapshot = "snapshot"

type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub owns the client set; only Run touches it.
type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients map[*Client]bool
	count   atomic.Int64

	register   chan *Client
	unregister chan *Client
	messages   chan []byte

	log logger.Logger
}

func NewHub(parent context.Context, log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients: make(map[*Client]bool),

		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		messages:   make(chan []byte, 16),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down...")
			for client := range h.clients {
				close(client.send)
			}
			h.clients = map[*Client]bool{}
			h.count.Store(0)
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			h.log.Info("ws: client registered", "id", c.ID, "total_clients", len(h.clients))

		case c := <-h.unregister:
			if !h.clients[c] {
				continue
			}
			delete(h.clients, c)
			close(c.send)
			h.count.Store(int64(len(h.clients)))
			h.log.Info("ws: client unregistered", "id", c.ID)

		case msg := <-h.messages:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Clients reports the number of registered clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Broadcast queues snap for every connected client. The hub keeps nothing
// once the message is delivered.
func (h *Hub) Broadcast(snap *core.Snapshot) {
	message, err := json.Marshal(Event{Event: EventSnapshot, Payload: snap})
	if err != nil {
		h.log.Error("ws: failed to marshal snapshot", "error", err)
		return
	}

	select {
	case h.messages <- message:
	case <-h.ctx.Done():
	default:
		h.log.Warn("ws: broadcast buffer full, dropping snapshot", "id", snap.ID())
	}
}

func (h *Hub) fanOut(message []byte) {
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, force unregister", "id", client.ID)
			delete(h.clients, client)
			close(client.send)
			h.count.Store(int64(len(h.clients)))
		}
	}
}
