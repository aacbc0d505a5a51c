// Package config loads service configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration.
type Config struct {
	// Server
	ListenAddr string

	// Upstream base URLs, overridable for tests and staging.
	OrcaBaseURL      string
	RaydiumBaseURL   string
	SolscanBaseURL   string
	CoinGeckoBaseURL string
	JupiterBaseURL   string

	// SolscanAPIKey is optional; when empty the Solscan source is
	// skipped entirely, not treated as a failure.
	SolscanAPIKey string

	// Aggregation
	CacheTTL        time.Duration
	RefreshInterval time.Duration

	// Outbound HTTP
	FetchRetries int
	FetchBackoff time.Duration

	// Quote client
	SlippageBps  int
	QuoteTimeout time.Duration
}

// Load reads configuration from the environment. A .env file is
// loaded first when present; existing variables are not overridden.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		OrcaBaseURL:      getEnv("ORCA_BASE_URL", "https://api.orca.so"),
		RaydiumBaseURL:   getEnv("RAYDIUM_BASE_URL", "https://api-v3.raydium.io"),
		SolscanBaseURL:   getEnv("SOLSCAN_BASE_URL", "https://pro-api.solscan.io"),
		CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com"),
		JupiterBaseURL:   getEnv("JUPITER_BASE_URL", "https://quote-api.jup.ag"),

		SolscanAPIKey: getEnv("SOLSCAN_KEY", ""),

		CacheTTL:        getEnvAsDuration("CACHE_TTL", 30*time.Second),
		RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", 0),

		FetchRetries: getEnvAsInt("FETCH_RETRIES", 3),
		FetchBackoff: getEnvAsDuration("FETCH_BACKOFF", time.Second),

		SlippageBps:  getEnvAsInt("SLIPPAGE_BPS", 50),
		QuoteTimeout: getEnvAsDuration("QUOTE_TIMEOUT", 8*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
