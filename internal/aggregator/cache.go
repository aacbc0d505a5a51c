package aggregator

import (
	"sync"
	"time"

	"solana-dex-dashboard/internal/domain"
)

// DefaultCacheTTL is how long one aggregation result stays fresh.
const DefaultCacheTTL = 30 * time.Second

// Cache is a process-wide single-slot cache holding the most recent
// AggregationResult and the time it was produced. Staleness of at most
// TTL is the contract; there is no eviction beyond the check-on-read.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	result   *domain.AggregationResult
	storedAt time.Time
}

// NewCache creates a cache with the given TTL. A nil clock defaults
// to time.Now; tests inject their own.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now}
}

// Get returns the stored result if it has not expired.
func (c *Cache) Get() (*domain.AggregationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result == nil || c.now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.result, true
}

// Set unconditionally overwrites the slot and stamps the current time.
func (c *Cache) Set(result *domain.AggregationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = result
	c.storedAt = c.now()
}

// Clear empties the slot.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = nil
	c.storedAt = time.Time{}
}
