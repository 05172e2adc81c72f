package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordSyncRun records the outcome of a full feed sync run.
func RecordSyncRun(submitted int, inserted, skipped int64, duration time.Duration) {
	SyncRunsTotal.Inc()
	SyncRunDuration.Observe(duration.Seconds())
	SyncArticlesTotal.WithLabelValues("submitted").Add(float64(submitted))
	SyncArticlesTotal.WithLabelValues("inserted").Add(float64(inserted))
	SyncArticlesTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordFeedSynced records metrics for a single successfully synced feed.
// Found is the raw item count; fresh is the count that survived normalization
// and the freshness window.
func RecordFeedSynced(source string, duration time.Duration, found, fresh int) {
	FeedSyncDuration.WithLabelValues(source).Observe(duration.Seconds())
	FeedItemsFoundTotal.WithLabelValues(source).Add(float64(found))
	FeedItemsFreshTotal.WithLabelValues(source).Add(float64(fresh))
}

// RecordFeedSyncError records a per-feed failure during a sync run.
func RecordFeedSyncError(source, errorType string) {
	FeedSyncErrors.WithLabelValues(source, errorType).Inc()
}

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// RecordContentFetchSuccess records a successful content fetch operation.
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed content fetch operation.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchSkipped records a skipped content fetch operation.
// This occurs when feed content is already long enough and fetching is unnecessary.
func RecordContentFetchSkipped() {
	ContentFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}

// RecordAssistantRequest records the outcome of an assistant completion request.
func RecordAssistantRequest(provider string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	AssistantRequestsTotal.WithLabelValues(provider, status).Inc()
	AssistantRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_articles", "upsert_articles").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
