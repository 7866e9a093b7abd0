package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boardroom",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boardroom",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	phaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boardroom",
			Subsystem: "deliberation",
			Name:      "phase_duration_seconds",
			Help:      "Wall time of each deliberation phase.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"phase"},
	)
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boardroom",
			Subsystem: "deliberation",
			Name:      "runs_total",
			Help:      "Finished deliberations by outcome.",
		},
		[]string{"outcome", "consensus"},
	)
	activeRuns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "boardroom",
			Subsystem: "deliberation",
			Name:      "active_runs",
			Help:      "Deliberations currently running.",
		},
	)
	persistenceFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boardroom",
			Subsystem: "history",
			Name:      "write_failures_total",
			Help:      "History writes that failed and were skipped.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, phaseDuration, runsTotal, activeRuns, persistenceFailures)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordPhase(phase string, duration time.Duration) {
	RegisterMetrics()
	phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

func RecordRunStarted() {
	RegisterMetrics()
	activeRuns.Inc()
}

func RecordRunFinished(outcome string, consensus bool) {
	RegisterMetrics()
	activeRuns.Dec()
	runsTotal.WithLabelValues(outcome, strconv.FormatBool(consensus)).Inc()
}

func RecordPersistenceFailure() {
	RegisterMetrics()
	persistenceFailures.Inc()
}
