// Package metrics exposes Prometheus collectors for the scrape pipeline.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchAttemptsTotal *prometheus.CounterVec
	discoveredIDsTotal *prometheus.CounterVec
	recordsTotal       *prometheus.CounterVec
	runDurationSeconds prometheus.Histogram

	once sync.Once
)

// Init registers the pipeline collectors with the default registry.
// It is safe to call multiple times.
func Init() {
	once.Do(func() {
		fetchAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pib_fetch_attempts_total",
				Help: "HTTP fetch attempts, labeled by outcome (ok, retry, exhausted).",
			},
			[]string{"outcome"},
		)

		discoveredIDsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pib_discovered_ids_total",
				Help: "New unique identifiers yielded per discovery strategy.",
			},
			[]string{"strategy"},
		)

		recordsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pib_records_total",
				Help: "Detail fetch results, labeled accepted or by drop reason.",
			},
			[]string{"outcome"},
		)

		runDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pib_run_duration_seconds",
				Help:    "Wall-clock duration of complete scrape runs.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		)
	})
}

// FetchAttempt counts one fetch attempt with the given outcome.
func FetchAttempt(outcome string) {
	Init()
	fetchAttemptsTotal.WithLabelValues(outcome).Inc()
}

// Discovered counts n new identifiers credited to a strategy.
func Discovered(strategy string, n int) {
	Init()
	discoveredIDsTotal.WithLabelValues(strategy).Add(float64(n))
}

// RecordAccepted counts one record that made it into the index.
func RecordAccepted() {
	Init()
	recordsTotal.WithLabelValues("accepted").Inc()
}

// RecordDropped counts one id filtered out of the index.
func RecordDropped(reason string) {
	Init()
	recordsTotal.WithLabelValues("dropped_" + reason).Inc()
}

// ObserveRunDuration records the duration of one scrape run.
func ObserveRunDuration(d time.Duration) {
	Init()
	runDurationSeconds.Observe(d.Seconds())
}
