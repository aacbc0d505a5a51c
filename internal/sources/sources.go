// Package sources contains one adapter per upstream pool-listing or
// price service. Each adapter knows its upstream's request shape and
// response schema and maps raw records into the normalized domain.Pool.
package sources

import (
	"context"

	"solana-dex-dashboard/internal/domain"
)

// PoolSource provides normalized pools from one upstream DEX API.
type PoolSource interface {
	// Name identifies the source in aggregation results and errors.
	Name() string

	// FetchPools returns this source's pools in upstream response
	// order. Transport, status and parse failures are returned as
	// errors; adapters never panic past their boundary.
	FetchPools(ctx context.Context) ([]domain.Pool, error)
}

// PriceSource provides reference USD prices keyed by token symbol.
type PriceSource interface {
	FetchPrices(ctx context.Context) (domain.PriceMap, error)
}

// Per-source record cap keeping aggregation payloads predictable.
const maxPoolsPerSource = 15
