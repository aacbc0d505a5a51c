// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Aggregation metrics
	SourceFetches       *prometheus.CounterVec
	SourceFetchLatency  *prometheus.HistogramVec
	PoolsMerged         prometheus.Gauge
	AggregationDuration prometheus.Histogram
	FallbackServed      prometheus.Counter

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Quote metrics
	QuoteRequests     *prometheus.CounterVec
	QuoteLatency      prometheus.Histogram
	SwapBuildRequests *prometheus.CounterVec

	// HTTP surface metrics
	HTTPRequests       *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
	WSClients          prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "dex_dashboard"
	}

	return &Metrics{
		SourceFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "source_fetches_total",
			Help:      "Total number of upstream source fetches by source and outcome",
		}, []string{"source", "outcome"}),
		SourceFetchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "source_fetch_latency_seconds",
			Help:      "Upstream source fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		PoolsMerged: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "pools_merged",
			Help:      "Number of pools in the most recent merged collection",
		}),
		AggregationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "duration_seconds",
			Help:      "Full aggregation round duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		FallbackServed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "fallback_served_total",
			Help:      "Total number of aggregations answered by the static fallback list",
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of aggregation cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of aggregation cache misses",
		}),

		QuoteRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quote",
			Name:      "requests_total",
			Help:      "Total number of quote requests by outcome",
		}, []string{"outcome"}),
		QuoteLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "quote",
			Name:      "latency_seconds",
			Help:      "Quote request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SwapBuildRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quote",
			Name:      "swap_build_requests_total",
			Help:      "Total number of swap transaction build requests by outcome",
		}, []string{"outcome"}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status class",
		}, []string{"route", "status"}),
		HTTPRequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_latency_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		WSClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "ws_clients",
			Help:      "Number of connected WebSocket dashboard clients",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSourceFetch records the outcome of one upstream source fetch.
func RecordSourceFetch(source, outcome string, seconds float64) {
	DefaultMetrics.SourceFetches.WithLabelValues(source, outcome).Inc()
	DefaultMetrics.SourceFetchLatency.WithLabelValues(source).Observe(seconds)
}

// RecordAggregation records one full aggregation round.
func RecordAggregation(merged int, seconds float64) {
	DefaultMetrics.PoolsMerged.Set(float64(merged))
	DefaultMetrics.AggregationDuration.Observe(seconds)
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	DefaultMetrics.CacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	DefaultMetrics.CacheMisses.Inc()
}

// RecordFallback increments the fallback counter.
func RecordFallback() {
	DefaultMetrics.FallbackServed.Inc()
}

// RecordQuote records one quote request.
func RecordQuote(outcome string, seconds float64) {
	DefaultMetrics.QuoteRequests.WithLabelValues(outcome).Inc()
	DefaultMetrics.QuoteLatency.Observe(seconds)
}

// RecordSwapBuild records one swap transaction build request.
func RecordSwapBuild(outcome string) {
	DefaultMetrics.SwapBuildRequests.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(route, status string, seconds float64) {
	DefaultMetrics.HTTPRequests.WithLabelValues(route, status).Inc()
	DefaultMetrics.HTTPRequestLatency.WithLabelValues(route).Observe(seconds)
}
