package server

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"solana-dex-dashboard/internal/domain"
	"solana-dex-dashboard/internal/jupiter"
)

// contentSecurityPolicy restricts script/style/connect origins for the
// dashboard; the routing API is the only permitted external connect.
const contentSecurityPolicy = "default-src 'self'; script-src 'self'; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; " +
	"connect-src 'self' https://quote-api.jup.ag;"

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Message string `json:"message"`
}

// handlePools serves the current aggregation, cache-or-fetch. A result
// with a non-empty error list is a partial success: available pools
// are still rendered alongside the per-source errors.
func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	result := s.aggregator.Aggregate(r.Context())
	setSecurityHeaders(w)
	writeJSON(w, http.StatusOK, result)
}

// pricesResponse is the simulated-price payload keyed by mint.
type pricesResponse struct {
	Prices    map[string]float64 `json:"prices"`
	Timestamp int64              `json:"timestamp"`
}

// handlePrices returns simulated/derived prices for a caller-supplied
// comma-separated mint list. An empty list is a client error, distinct
// from upstream/server failures.
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("mints")
	mints := strings.Split(raw, ",")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request parameters: mints cannot be empty"})
		return
	}
	for _, m := range mints {
		if m == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request parameters: mints cannot be empty"})
			return
		}
	}

	prices := make(map[string]float64, len(mints))
	for _, mint := range mints {
		switch mint {
		case domain.MintSOL:
			prices[mint] = rand.Float64()*50 + 100
		case domain.MintUSDC, domain.MintUSDT:
			prices[mint] = 1.00
		default:
			prices[mint] = rand.Float64() * 10
		}
	}

	setSecurityHeaders(w)
	writeJSON(w, http.StatusOK, pricesResponse{
		Prices:    prices,
		Timestamp: time.Now().UnixMilli(),
	})
}

// handleQuote proxies a swap quote request to the routing service.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	inputMint := q.Get("inputMint")
	outputMint := q.Get("outputMint")
	amountRaw := q.Get("amount")

	if inputMint == "" || outputMint == "" || amountRaw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "inputMint, outputMint and amount are required"})
		return
	}
	amount, err := strconv.ParseUint(amountRaw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "amount must be a non-negative integer of atomic units"})
		return
	}

	quote, err := s.quotes.GetQuote(r.Context(), inputMint, outputMint, amount)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, jupiter.ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, errorResponse{Message: err.Error()})
		return
	}

	setSecurityHeaders(w)
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// StatusResponse is the JSON response for /status.
type StatusResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	uptime := ""
	if !started.IsZero() {
		uptime = time.Since(started).String()
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Status: "running",
		Uptime: uptime,
	})
}
