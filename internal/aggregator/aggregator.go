// Package aggregator fans out to the configured pool sources, merges
// their results with independent-failure semantics and memoizes the
// outcome in a short-TTL cache.
package aggregator

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"solana-dex-dashboard/internal/domain"
	"solana-dex-dashboard/internal/observability"
	"solana-dex-dashboard/internal/sources"
)

// Default ranking and filtering thresholds.
const (
	DefaultMinTVL       = 10_000.0
	DefaultMinVolume24h = 5_000.0
	DefaultTopN         = 15
	DefaultSafeN        = 5
)

// Aggregator merges pool listings from all configured sources.
type Aggregator struct {
	sources []sources.PoolSource
	prices  sources.PriceSource
	cache   *Cache
	logger  *log.Logger
	now     func() time.Time

	minTVL    float64
	minVolume float64
	topN      int
	safeN     int
}

// Options for creating an Aggregator.
type Options struct {
	Sources []sources.PoolSource
	Prices  sources.PriceSource // optional reference-price source
	Cache   *Cache              // required
	Logger  *log.Logger         // optional
	Now     func() time.Time    // optional, tests inject a clock

	// Zero values fall back to the package defaults.
	MinTVL    float64
	MinVolume float64
	TopN      int
	SafeN     int
}

// New creates an Aggregator.
func New(opts Options) *Aggregator {
	a := &Aggregator{
		sources:   opts.Sources,
		prices:    opts.Prices,
		cache:     opts.Cache,
		logger:    opts.Logger,
		now:       opts.Now,
		minTVL:    opts.MinTVL,
		minVolume: opts.MinVolume,
		topN:      opts.TopN,
		safeN:     opts.SafeN,
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard, "", 0)
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.minTVL == 0 {
		a.minTVL = DefaultMinTVL
	}
	if a.minVolume == 0 {
		a.minVolume = DefaultMinVolume24h
	}
	if a.topN == 0 {
		a.topN = DefaultTopN
	}
	if a.safeN == 0 {
		a.safeN = DefaultSafeN
	}
	return a
}

// sourceOutcome is one settled fan-out branch.
type sourceOutcome struct {
	name  string
	pools []domain.Pool
	err   error
}

// Aggregate returns the cached result when fresh, otherwise fans out
// to every source concurrently, waits for all branches to settle and
// merges the successes. One failing source never suppresses the
// others; every failure becomes an error string on the result. The
// caller always receives a non-empty, renderable result. Concurrent
// callers missing the cache re-fetch independently; there is no
// in-flight de-duplication.
func (a *Aggregator) Aggregate(ctx context.Context) *domain.AggregationResult {
	if cached, ok := a.cache.Get(); ok {
		observability.RecordCacheHit()
		hit := *cached
		hit.Cached = true
		return &hit
	}
	observability.RecordCacheMiss()

	start := a.now()
	outcomes := make([]sourceOutcome, len(a.sources))
	var prices domain.PriceMap
	var priceErr error

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src sources.PoolSource) {
			defer wg.Done()
			fetchStart := time.Now()
			pools, err := src.FetchPools(ctx)
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			observability.RecordSourceFetch(src.Name(), outcome, time.Since(fetchStart).Seconds())
			outcomes[i] = sourceOutcome{name: src.Name(), pools: pools, err: err}
		}(i, src)
	}
	if a.prices != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prices, priceErr = a.prices.FetchPrices(ctx)
		}()
	}
	wg.Wait()

	result := &domain.AggregationResult{
		Sources:   make(map[string][]domain.Pool),
		Timestamp: a.now().UnixMilli(),
	}

	// Merge in registration order; each source's sublist stays
	// contiguous and preserves upstream response order.
	var merged []domain.Pool
	for _, o := range outcomes {
		if o.err != nil {
			a.logger.Printf("source %s failed: %v", o.name, o.err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", o.name, o.err))
			continue
		}
		a.logger.Printf("source %s returned %d pools", o.name, len(o.pools))
		result.Sources[o.name] = o.pools
		merged = append(merged, o.pools...)
	}

	if priceErr != nil {
		a.logger.Printf("price source failed: %v", priceErr)
		result.Errors = append(result.Errors, fmt.Sprintf("Prices: %v", priceErr))
	}
	attachPrices(merged, prices)

	if len(merged) == 0 {
		a.logger.Printf("all sources failed, serving fallback pools")
		observability.RecordFallback()
		merged = fallbackPools()
	}

	result.TopPools = a.rank(merged)
	result.SafePools = a.safeFilter(merged)

	observability.RecordAggregation(len(merged), a.now().Sub(start).Seconds())
	a.cache.Set(result)
	return result
}

// rank applies the minimum-viability filter, sorts by descending TVL
// and truncates to the bounded top-N. The sort is stable: equal-TVL
// pools keep their merge order.
func (a *Aggregator) rank(merged []domain.Pool) []domain.Pool {
	ranked := make([]domain.Pool, 0, len(merged))
	for _, p := range merged {
		if p.TVL >= a.minTVL && p.Volume24h >= a.minVolume {
			ranked = append(ranked, p)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TVL > ranked[j].TVL
	})

	if len(ranked) > a.topN {
		ranked = ranked[:a.topN]
	}
	return ranked
}

// safeFilter keeps pools whose pairs are both on the well-known
// symbol allow-list, bounded to a small count for prioritized display.
func (a *Aggregator) safeFilter(merged []domain.Pool) []domain.Pool {
	safe := make([]domain.Pool, 0, a.safeN)
	for _, p := range merged {
		if !p.IsSafe() {
			continue
		}
		safe = append(safe, p)
		if len(safe) == a.safeN {
			break
		}
	}
	return safe
}

// attachPrices sets each pool's last-known tokenA price where the
// reference price map has one.
func attachPrices(pools []domain.Pool, prices domain.PriceMap) {
	if len(prices) == 0 {
		return
	}
	for i := range pools {
		if price, ok := prices[pools[i].TokenA.Symbol]; ok && price > 0 {
			pools[i].Price = price
		}
	}
}
