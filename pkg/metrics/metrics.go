package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store mutation counts, labelled by operation (add_task, delete_project, ...).
	StoreMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_store_mutation_count",
			Help: "Total number of state store mutations",
		},
		[]string{"operation"},
	)

	// Local persistence write latency.
	LocalSaveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_local_save_duration_seconds",
			Help:    "Durable local store save duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~2s
		},
		[]string{"key"},
	)

	// Remote mirror write latency, labelled by outcome.
	RemoteWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_remote_write_duration_seconds",
			Help:    "Remote mirror write duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"status"},
	)

	// Remote mirror write failures. Dual writes are optimistic, so failures
	// only ever surface here and in the log.
	RemoteSyncFailureCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_remote_sync_failure_count",
			Help: "Total number of failed remote mirror writes",
		},
		[]string{"operation"},
	)

	// Timer engine activity.
	TimerTickCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_timer_tick_count",
			Help: "Total number of timer ticks applied",
		},
	)

	TimerCompletionCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_timer_completion_count",
			Help: "Total number of timer target completions detected",
		},
	)

	// HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordMutation increments the mutation counter for one store operation.
func RecordMutation(operation string) {
	StoreMutationCount.WithLabelValues(operation).Inc()
}

// RecordLocalSave records one durable local store write.
func RecordLocalSave(key string, duration time.Duration) {
	LocalSaveDuration.WithLabelValues(key).Observe(duration.Seconds())
}

// RecordRemoteWrite records one remote mirror write attempt.
func RecordRemoteWrite(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failed"
		RemoteSyncFailureCount.WithLabelValues(operation).Inc()
	}
	RemoteWriteDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordHTTPRequest records one handled HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
