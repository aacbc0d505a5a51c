// Package main runs the DEX dashboard backend: pool aggregation over
// the configured upstream sources, swap quotes through Jupiter, and
// the HTTP/WebSocket surface the dashboard consumes.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solana-dex-dashboard/internal/aggregator"
	"solana-dex-dashboard/internal/config"
	"solana-dex-dashboard/internal/httpclient"
	"solana-dex-dashboard/internal/jupiter"
	"solana-dex-dashboard/internal/server"
	"solana-dex-dashboard/internal/sources"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	client := httpclient.New(
		httpclient.WithRetries(cfg.FetchRetries),
		httpclient.WithBackoff(cfg.FetchBackoff),
	)

	poolSources := []sources.PoolSource{
		sources.NewOrcaSource(cfg.OrcaBaseURL, client),
		sources.NewRaydiumSource(cfg.RaydiumBaseURL, client),
		sources.NewMeteoraSource(),
	}
	if cfg.SolscanAPIKey != "" {
		poolSources = append(poolSources, sources.NewSolscanSource(cfg.SolscanBaseURL, cfg.SolscanAPIKey, client))
	} else {
		logger.Println("SOLSCAN_KEY not set, skipping Solscan source")
	}

	agg := aggregator.New(aggregator.Options{
		Sources: poolSources,
		Prices:  sources.NewCoinGeckoSource(cfg.CoinGeckoBaseURL, client),
		Cache:   aggregator.NewCache(cfg.CacheTTL, nil),
		Logger:  log.New(os.Stdout, "[aggregator] ", log.LstdFlags),
	})

	quotes := jupiter.New(cfg.JupiterBaseURL, client,
		jupiter.WithSlippageBps(cfg.SlippageBps),
		jupiter.WithQuoteTimeout(cfg.QuoteTimeout),
	)

	srv := server.New(cfg.ListenAddr, agg, quotes, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, shutting down", sig)
		cancel()

		sig = <-sigCh
		logger.Printf("received second signal %v, forcing exit", sig)
		os.Exit(1)
	}()

	if cfg.RefreshInterval > 0 {
		go refreshLoop(ctx, agg, srv.Broadcaster(), cfg.RefreshInterval, logger)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	logger.Println("server stopped")
}

// refreshLoop re-aggregates on a fixed interval and pushes the result
// to connected WebSocket clients, keeping the cache warm between
// dashboard requests.
func refreshLoop(ctx context.Context, agg *aggregator.Aggregator, bc *server.Broadcaster, interval time.Duration, logger *log.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result := agg.Aggregate(ctx)
			if len(result.Errors) > 0 {
				logger.Printf("refresh completed with %d source errors", len(result.Errors))
			}
			bc.Broadcast(result)
		}
	}
}
