// Package metrics declares the Prometheus series shared by the API server
// and the sync worker. Everything registers with the default registry at
// init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Sync metrics track feed aggregation runs
var (
	// ArticlesTotal tracks total number of articles in database
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the database",
		},
	)

	// SyncRunsTotal counts completed sync runs
	SyncRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of completed feed sync runs",
		},
	)

	// SyncRunDuration measures the wall time of a full sync run
	SyncRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_run_duration_seconds",
			Help:    "Time taken to complete a full feed sync run",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// SyncArticlesTotal counts articles processed per sync run by outcome
	SyncArticlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_articles_total",
			Help: "Total number of articles processed by sync runs",
		},
		[]string{"outcome"}, // outcome: submitted, inserted, skipped
	)

	// FeedItemsFoundTotal counts raw feed items found per source
	FeedItemsFoundTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_found_total",
			Help: "Total number of raw feed items found per source",
		},
		[]string{"source"},
	)

	// FeedItemsFreshTotal counts items that survived normalization and freshness filtering
	FeedItemsFreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_fresh_total",
			Help: "Total number of feed items within the freshness window per source",
		},
		[]string{"source"},
	)

	// FeedSyncDuration measures time to fetch and normalize one feed
	FeedSyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_sync_duration_seconds",
			Help:    "Time taken to fetch and normalize a single feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	// FeedSyncErrors counts per-feed failures during sync
	FeedSyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_sync_errors_total",
			Help: "Total number of per-feed sync errors",
		},
		[]string{"source", "error_type"},
	)

	// ContentFetchAttemptsTotal counts content fetch attempts by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"}, // result: success, failure, skipped
	)

	// ContentFetchDuration measures time to fetch article content
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ContentFetchSize measures fetched content size in bytes
	ContentFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "content_fetch_size_bytes",
			Help: "Fetched article content size in bytes",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400, 204800, 409600, 819200,
				1638400, 3276800, 6553600, 10485760, // up to 10MB
			},
		},
	)
)

// Assistant metrics track chat completion requests
var (
	// AssistantRequestsTotal counts chat completion requests by provider and status
	AssistantRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_requests_total",
			Help: "Total number of assistant completion requests",
		},
		[]string{"provider", "status"},
	)

	// AssistantRequestDuration measures assistant completion latency
	AssistantRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_request_duration_seconds",
			Help:    "Time taken to complete an assistant request",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"provider"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
