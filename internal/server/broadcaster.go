package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"solana-dex-dashboard/internal/domain"
	"solana-dex-dashboard/internal/observability"
)

// Broadcaster pushes fresh aggregation results to connected dashboard
// clients over WebSocket, so the UI does not have to poll.
type Broadcaster struct {
	clients  map[*websocket.Conn]struct{}
	mu       sync.Mutex
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewBroadcaster creates a WebSocket broadcaster.
func NewBroadcaster(logger *log.Logger) *Broadcaster {
	return &Broadcaster{
		clients:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
	}
}

// Broadcast sends one aggregation result to every connected client.
// Clients that fail the write are dropped.
func (b *Broadcaster) Broadcast(result *domain.AggregationResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg, err := json.Marshal(result)
	if err != nil {
		b.logger.Printf("marshal broadcast: %v", err)
		return
	}

	for c := range b.clients {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			b.logger.Printf("websocket write: %v", err)
			c.Close()
			delete(b.clients, c)
		}
	}
	observability.DefaultMetrics.WSClients.Set(float64(len(b.clients)))
}

// Handler upgrades the connection and registers the client.
func (b *Broadcaster) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			b.logger.Printf("websocket upgrade: %v", err)
			return
		}

		b.mu.Lock()
		b.clients[conn] = struct{}{}
		observability.DefaultMetrics.WSClients.Set(float64(len(b.clients)))
		b.mu.Unlock()

		// Read loop drains control frames and detects disconnects.
		go func() {
			defer func() {
				b.mu.Lock()
				delete(b.clients, conn)
				observability.DefaultMetrics.WSClients.Set(float64(len(b.clients)))
				b.mu.Unlock()
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
