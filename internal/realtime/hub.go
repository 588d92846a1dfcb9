// Package realtime fans a zero-payload change signal out to connected
// dashboard clients. The signal is purely a cue to re-fetch current state
// from the dashboard endpoints; it is never a sequenced delta.
package realtime

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Message is the only frame the hub sends. There is deliberately no data
// field: dashboards re-poll on receipt.
type Message struct {
	Type string `json:"type"`
}

const messageTypeCaseUpdate = "case_update"

// Hub maintains the set of connected clients and broadcasts to all of them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a hub with no clients. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes client lifecycle and broadcast events until ctx is canceled,
// then closes every remaining client and returns ctx.Err().
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Info().Str("client_id", client.id).Int("clients", total).Msg("dashboard connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Info().Str("client_id", client.id).Int("clients", total).Msg("dashboard disconnected")

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// BroadcastCaseUpdate queues one change signal for every connected client.
// Best effort: clients that connect after the signal is queued miss it, and
// if the hub's own queue is full the signal is dropped.
func (h *Hub) BroadcastCaseUpdate() {
	select {
	case h.broadcast <- Message{Type: messageTypeCaseUpdate}:
	default:
		log.Warn().Msg("broadcast queue full, dropping case_update")
	}
}

// deliver sends msg to every client. A client whose send buffer is full is
// dropped; its dashboard reconnects and re-polls, so nothing is lost.
func (h *Hub) deliver(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
			log.Warn().Str("client_id", client.id).Msg("slow dashboard client dropped")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	log.Info().Msg("closed all dashboard clients during shutdown")
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
