package network

import (
	"context"
	"sync"
	"time"

	"github.com/Deimvis/MafiaGame/internal/platform/logger"
	"github.com/Deimvis/MafiaGame/internal/platform/metrics"
	"github.com/Deimvis/MafiaGame/internal/room"
)

// Hub maintains the set of active websocket clients of the room.
type Hub struct {
	room       *room.Room
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // closed when Run returns
	mu         sync.Mutex
	logger     *logger.Logger
}

// NewHub initializes a hub serving one room.
func NewHub(rm *room.Room, log *logger.Logger) *Hub {
	return &Hub{
		room:       rm,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Room returns the hosted room.
func (h *Hub) Room() *room.Room { return h.room }

// Run starts the hub's main loop handling client lifecycle and exporting
// the event-log cursor gauge.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	gaugeTicker := time.NewTicker(time.Second)
	defer gaugeTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("websocket hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.SubscribersActive.Inc()
			h.logger.Info("client connected", "username", client.username, "conn", client.connID)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				// The hub only forgets the client. Its channels stay open:
				// the view stream may still be emitting, and a send on a
				// channel closed here would crash the whole process.
				delete(h.clients, client)
				metrics.SubscribersActive.Dec()
				h.logger.Info("client disconnected", "username", client.username, "conn", client.connID)
			}
			h.mu.Unlock()
		case <-gaugeTicker.C:
			metrics.EventLogIndex.Set(float64(h.room.EventLogIndex()))
		}
	}
}
