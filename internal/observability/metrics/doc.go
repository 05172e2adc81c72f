// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Feed sync metrics (items found, freshness drops, upsert outcomes)
//   - Assistant completion metrics
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "globalpulse/internal/observability/metrics"
//
//	func syncFeed(source string) {
//	    start := time.Now()
//	    // ... fetch and normalize ...
//	    metrics.RecordFeedSynced(source, time.Since(start), 20, 14)
//	}
package metrics
