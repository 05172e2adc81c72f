package worker

import (
	"globalpulse/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the sync worker.
// It embeds the standard ConfigMetrics for configuration monitoring and adds
// worker-specific metrics for the scheduled sync job.
//
// Worker-specific metrics:
//   - worker_sync_job_runs_total: Total sync job runs by status (success/failure)
//   - worker_sync_job_duration_seconds: Duration histogram of sync job execution
//   - worker_sync_job_articles_total: Total articles submitted per job run
//   - worker_sync_job_last_success_timestamp: Unix timestamp of the last successful run
type WorkerMetrics struct {
	*config.ConfigMetrics

	// SyncJobRunsTotal counts sync job runs by status.
	SyncJobRunsTotal *prometheus.CounterVec

	// SyncJobDurationSeconds measures the duration of one sync job run.
	SyncJobDurationSeconds prometheus.Histogram

	// SyncJobArticlesTotal counts articles submitted across all job runs.
	SyncJobArticlesTotal prometheus.Counter

	// SyncJobLastSuccessTimestamp records the Unix timestamp of the last
	// successful run. Useful for staleness alerts.
	SyncJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a WorkerMetrics instance with all metrics
// registered via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		SyncJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_sync_job_runs_total",
			Help: "Total number of sync job runs by status (success/failure)",
		}, []string{"status"}),

		SyncJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_sync_job_duration_seconds",
			Help:    "Duration of sync job execution in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 600}, // 1s, 5s, 30s, 1m, 5m, 10m
		}),

		SyncJobArticlesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sync_job_articles_total",
			Help: "Total number of articles submitted across all sync job runs",
		}),

		SyncJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_sync_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful sync job run",
		}),
	}
}

// MustRegister is a no-op kept for the usual metrics initialization pattern;
// promauto already registered everything in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordJobRun increments the job run counter for the given status.
// Status should be either "success" or "failure".
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.SyncJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a sync job run in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.SyncJobDurationSeconds.Observe(seconds)
}

// RecordArticlesSubmitted adds the number of articles a run submitted for
// persistence to the total counter.
func (m *WorkerMetrics) RecordArticlesSubmitted(count int) {
	m.SyncJobArticlesTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.SyncJobLastSuccessTimestamp.SetToCurrentTime()
}
