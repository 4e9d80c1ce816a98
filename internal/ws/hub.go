package ws

import (
	"context"
	"sync"

	"hirematch/internal/logger"

	"go.uber.org/zap"
)

// Hub fans messages out to every connected client. A client whose send queue is
// full is dropped rather than allowed to stall the broadcast.
type Hub struct {
	clients   map[*Client]bool
	broadcast chan []byte
	// closed is set under mutex once Run has shut down; later registrations are refused.
	closed bool
	mutex  sync.RWMutex
	logger *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan []byte, 1024),
		logger:    logger.OrNop(log).Named("ws"),
	}
}

// Run serves the hub until ctx is cancelled, then closes every client queue.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			h.closed = true
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case message := <-h.broadcast:
			// Queues are closed only under the write lock, so sending under the
			// read lock never hits a closed channel.
			h.mutex.RLock()
			delivered := len(h.clients)
			var slow []*Client
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					slow = append(slow, client)
				}
			}
			h.mutex.RUnlock()

			for _, client := range slow {
				h.logger.Warn("WS client too slow, dropping")
				h.remove(client)
			}
			h.logger.Debug("WS broadcast", zap.Int("clients", delivered-len(slow)))
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Debug("WS disconnected", zap.Int("total_clients", total))
}

// Register adds a client. After shutdown the client's queue is closed at once so
// its write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	if h.closed {
		h.mutex.Unlock()
		close(client.send)
		return
	}
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Debug("WS connected", zap.Int("total_clients", total))
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.remove(client)
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("WS broadcast dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
