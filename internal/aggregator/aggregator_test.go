package aggregator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-dex-dashboard/internal/domain"
)

// stubSource is a PoolSource with a canned outcome.
type stubSource struct {
	name  string
	pools []domain.Pool
	err   error
	calls atomic.Int32
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchPools(_ context.Context) ([]domain.Pool, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.pools, nil
}

// stubPrices is a PriceSource with a canned outcome.
type stubPrices struct {
	prices domain.PriceMap
	err    error
}

func (s *stubPrices) FetchPrices(_ context.Context) (domain.PriceMap, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prices, nil
}

func makePool(id, symA, symB string, tvl, volume float64) domain.Pool {
	return domain.Pool{
		ID:        id,
		Protocol:  "Test",
		TokenA:    domain.Token{Symbol: symA, Mint: "mint-" + symA, Decimals: 9},
		TokenB:    domain.Token{Symbol: symB, Mint: "mint-" + symB, Decimals: 6},
		TVL:       tvl,
		Volume24h: volume,
		Fee:       0.3,
	}
}

// fakeClock is an adjustable clock for cache TTL tests.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time          { return c.current }
func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestAggregator(clock *fakeClock, prices *stubPrices, srcs ...*stubSource) *Aggregator {
	opts := Options{
		Cache: NewCache(DefaultCacheTTL, clock.Now),
		Now:   clock.Now,
	}
	for _, s := range srcs {
		opts.Sources = append(opts.Sources, s)
	}
	if prices != nil {
		opts.Prices = prices
	}
	return New(opts)
}

func TestNew_ZeroOptionsFallBackToDefaults(t *testing.T) {
	agg := New(Options{Cache: NewCache(DefaultCacheTTL, nil)})

	assert.Equal(t, DefaultMinTVL, agg.minTVL)
	assert.Equal(t, DefaultMinVolume24h, agg.minVolume)
	assert.Equal(t, DefaultTopN, agg.topN)
	assert.Equal(t, DefaultSafeN, agg.safeN)
}

func TestAggregate_PartialFailure(t *testing.T) {
	ok1 := &stubSource{name: "Orca", pools: []domain.Pool{makePool("orca-1", "SOL", "USDC", 45_000_000, 2_000_000)}}
	bad := &stubSource{name: "Raydium", err: errors.New("HTTP 502: 502 Bad Gateway")}
	ok2 := &stubSource{name: "Meteora", pools: []domain.Pool{makePool("met-1", "USDC", "USDT", 41_000_000, 2_300_000)}}

	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, ok1, bad, ok2)

	result := agg.Aggregate(context.Background())

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Raydium")
	assert.Contains(t, result.Errors[0], "502")

	assert.Len(t, result.Sources, 2)
	assert.Contains(t, result.Sources, "Orca")
	assert.Contains(t, result.Sources, "Meteora")
	assert.NotContains(t, result.Sources, "Raydium")

	require.Len(t, result.TopPools, 2)
	assert.False(t, result.Cached)
	assert.Equal(t, clock.current.UnixMilli(), result.Timestamp)
}

func TestAggregate_CacheHitWithinTTL(t *testing.T) {
	src := &stubSource{name: "Orca", pools: []domain.Pool{makePool("orca-1", "SOL", "USDC", 45_000_000, 2_000_000)}}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, src)

	first := agg.Aggregate(context.Background())
	assert.False(t, first.Cached)
	require.Equal(t, int32(1), src.calls.Load())

	clock.Advance(10 * time.Second)
	second := agg.Aggregate(context.Background())
	assert.True(t, second.Cached)
	assert.Equal(t, int32(1), src.calls.Load(), "cache hit must issue zero upstream calls")
	assert.Equal(t, first.Timestamp, second.Timestamp)
}

func TestAggregate_CacheExpiresAfterTTL(t *testing.T) {
	src := &stubSource{name: "Orca", pools: []domain.Pool{makePool("orca-1", "SOL", "USDC", 45_000_000, 2_000_000)}}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, src)

	agg.Aggregate(context.Background())
	clock.Advance(DefaultCacheTTL + time.Second)

	refreshed := agg.Aggregate(context.Background())
	assert.False(t, refreshed.Cached)
	assert.Equal(t, int32(2), src.calls.Load(), "expired cache must trigger a fresh fetch")
}

func TestAggregate_RanksByDescendingTVL(t *testing.T) {
	// Registration order deliberately puts the small pool first.
	src := &stubSource{name: "Orca", pools: []domain.Pool{
		makePool("small", "SOL", "USDC", 10_000, 6_000),
		makePool("big", "SOL", "USDT", 50_000_000, 2_000_000),
	}}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, src)

	result := agg.Aggregate(context.Background())

	require.Len(t, result.TopPools, 2)
	assert.Equal(t, "big", result.TopPools[0].ID)
	assert.Equal(t, "small", result.TopPools[1].ID)
}

func TestAggregate_StableSortKeepsMergeOrderOnTies(t *testing.T) {
	src := &stubSource{name: "Orca", pools: []domain.Pool{
		makePool("tie-first", "SOL", "USDC", 1_000_000, 50_000),
		makePool("tie-second", "SOL", "USDT", 1_000_000, 60_000),
	}}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, src)

	result := agg.Aggregate(context.Background())

	require.Len(t, result.TopPools, 2)
	assert.Equal(t, "tie-first", result.TopPools[0].ID)
	assert.Equal(t, "tie-second", result.TopPools[1].ID)
}

func TestAggregate_ViabilityFilter(t *testing.T) {
	src := &stubSource{name: "Orca", pools: []domain.Pool{
		makePool("viable", "SOL", "USDC", 20_000, 8_000),
		makePool("thin-tvl", "SOL", "USDT", 9_999, 8_000),
		makePool("thin-volume", "RAY", "USDC", 20_000, 4_999),
	}}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, src)

	result := agg.Aggregate(context.Background())

	require.Len(t, result.TopPools, 1)
	assert.Equal(t, "viable", result.TopPools[0].ID)
}

func TestAggregate_TruncatesToTopN(t *testing.T) {
	src := &stubSource{name: "Orca"}
	for i := 0; i < 30; i++ {
		src.pools = append(src.pools, makePool("p", "SOL", "USDC", float64(100_000+i), 10_000))
	}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, src)

	result := agg.Aggregate(context.Background())
	assert.Len(t, result.TopPools, DefaultTopN)
}

func TestAggregate_SafePoolsFilter(t *testing.T) {
	src := &stubSource{name: "Orca", pools: []domain.Pool{
		makePool("sol-usdc", "SOL", "USDC", 1_000_000, 50_000),
		makePool("sol-unknown", "SOL", "UNKNOWNTOKEN", 1_000_000, 50_000),
		makePool("usdc-usdt", "USDC", "USDT", 1_000_000, 50_000),
	}}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, src)

	result := agg.Aggregate(context.Background())

	require.Len(t, result.SafePools, 2)
	assert.Equal(t, "sol-usdc", result.SafePools[0].ID)
	assert.Equal(t, "usdc-usdt", result.SafePools[1].ID)
}

func TestAggregate_TotalFailureServesFallback(t *testing.T) {
	bad1 := &stubSource{name: "Orca", err: errors.New("network unreachable")}
	bad2 := &stubSource{name: "Raydium", err: errors.New("HTTP 500: 500 Internal Server Error")}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, bad1, bad2)

	result := agg.Aggregate(context.Background())

	assert.Len(t, result.Errors, 2)
	require.NotEmpty(t, result.TopPools, "total failure must still render pools")
	for _, p := range result.TopPools {
		assert.True(t, p.Estimated)
	}
	assert.NotEmpty(t, result.SafePools)
}

func TestAggregate_AttachesReferencePrices(t *testing.T) {
	src := &stubSource{name: "Orca", pools: []domain.Pool{
		makePool("sol-usdc", "SOL", "USDC", 1_000_000, 50_000),
	}}
	prices := &stubPrices{prices: domain.PriceMap{"SOL": 142.31}}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, prices, src)

	result := agg.Aggregate(context.Background())

	require.Len(t, result.TopPools, 1)
	assert.Equal(t, 142.31, result.TopPools[0].Price)
	assert.Empty(t, result.Errors)
}

func TestAggregate_PriceFailureIsNonFatal(t *testing.T) {
	src := &stubSource{name: "Orca", pools: []domain.Pool{
		makePool("sol-usdc", "SOL", "USDC", 1_000_000, 50_000),
	}}
	prices := &stubPrices{err: errors.New("HTTP 429: 429 Too Many Requests")}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, prices, src)

	result := agg.Aggregate(context.Background())

	require.Len(t, result.TopPools, 1)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Prices")
}

func TestAggregate_SourceSublistsStayContiguous(t *testing.T) {
	first := &stubSource{name: "Orca", pools: []domain.Pool{
		makePool("orca-a", "SOL", "USDC", 1_000_000, 50_000),
		makePool("orca-b", "SOL", "USDT", 1_000_000, 50_000),
	}}
	second := &stubSource{name: "Raydium", pools: []domain.Pool{
		makePool("ray-a", "RAY", "USDC", 1_000_000, 50_000),
	}}
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	agg := newTestAggregator(clock, nil, first, second)

	result := agg.Aggregate(context.Background())

	// Equal TVL everywhere: stable sort preserves registration order
	// with each source's sublist contiguous.
	require.Len(t, result.TopPools, 3)
	assert.Equal(t, "orca-a", result.TopPools[0].ID)
	assert.Equal(t, "orca-b", result.TopPools[1].ID)
	assert.Equal(t, "ray-a", result.TopPools[2].ID)
}
