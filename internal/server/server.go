// Package server exposes the dashboard's internal HTTP surface:
// aggregated pools, simulated prices, swap quotes, health and metrics.
package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"solana-dex-dashboard/internal/aggregator"
	"solana-dex-dashboard/internal/jupiter"
	"solana-dex-dashboard/internal/observability"
)

// Server wires the aggregator and quote client behind HTTP routes.
type Server struct {
	aggregator  *aggregator.Aggregator
	quotes      *jupiter.Client
	broadcaster *Broadcaster
	logger      *log.Logger
	router      *mux.Router
	httpServer  *http.Server

	mu      sync.Mutex
	started time.Time
}

// New creates a Server listening on addr.
func New(addr string, agg *aggregator.Aggregator, quotes *jupiter.Client, logger *log.Logger) *Server {
	s := &Server{
		aggregator:  agg,
		quotes:      quotes,
		broadcaster: NewBroadcaster(logger),
		logger:      logger,
		router:      mux.NewRouter(),
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(s.requestIDMiddleware, s.loggingMiddleware)

	s.router.HandleFunc("/api/pools", s.handlePools).Methods(http.MethodGet)
	s.router.HandleFunc("/api/prices", s.handlePrices).Methods(http.MethodGet)
	s.router.HandleFunc("/api/quote", s.handleQuote).Methods(http.MethodGet)

	s.router.HandleFunc("/ws", s.broadcaster.Handler()).Methods(http.MethodGet)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	s.router.Handle("/metrics", observability.Handler()).Methods(http.MethodGet)
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Broadcaster exposes the WebSocket feed for refresh loops to push to.
func (s *Server) Broadcaster() *Broadcaster {
	return s.broadcaster
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	s.started = time.Now()
	s.mu.Unlock()

	s.logger.Printf("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
