package domain

// AggregationResult is the merged output of one aggregation round.
// Read-only once constructed; discarded after the cache TTL elapses.
type AggregationResult struct {
	// Sources maps source name to that source's normalized pools.
	// A failed source has no entry; its failure is in Errors instead.
	Sources map[string][]Pool `json:"sources"`

	// TopPools is the merged collection after the viability filter,
	// ranked by descending TVL and truncated to a bounded top-N.
	TopPools []Pool `json:"topPools"`

	// SafePools is the allow-list derivation over the same merged
	// collection, bounded to a small count.
	SafePools []Pool `json:"safePools"`

	// Errors holds one human-readable string per failed source.
	Errors []string `json:"errors"`

	// Cached is true when the result was served from the TTL cache.
	Cached bool `json:"cached"`

	// Timestamp is when the underlying fetch completed, epoch ms.
	Timestamp int64 `json:"timestamp"`
}

// PriceMap maps asset symbol to latest known unit price in USD.
// Rebuilt on every price-source fetch; no history retained.
type PriceMap map[string]float64
