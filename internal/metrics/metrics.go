// Package metrics exposes Prometheus instruments for the submission
// pipeline, the status lifecycle and the stats service. All methods are safe
// to call on a nil *Metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Submissions by record kind and outcome (accepted, duplicate, underage, ...)
	Submissions *prometheus.CounterVec

	// Lifecycle transitions by record kind and target status
	Transitions *prometheus.CounterVec

	StatsDuration      prometheus.Histogram
	StatsFailedCounts  prometheus.Counter
	StatsCacheRequests *prometheus.CounterVec
}

// New registers the instruments on reg. Pass prometheus.DefaultRegisterer in
// main and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civilregistry_submissions_total",
			Help: "Record submissions by kind and outcome",
		}, []string{"kind", "outcome"}),

		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civilregistry_status_transitions_total",
			Help: "Lifecycle transitions by kind and resulting status",
		}, []string{"kind", "status"}),

		StatsDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "civilregistry_stats_compute_duration_seconds",
			Help:    "Duration of a full stats snapshot computation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		StatsFailedCounts: factory.NewCounter(prometheus.CounterOpts{
			Name: "civilregistry_stats_failed_counts_total",
			Help: "Individual stats counters that failed and defaulted to zero",
		}),

		StatsCacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civilregistry_stats_cache_requests_total",
			Help: "Stats cache lookups by result (hit, miss)",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncSubmission(kind, outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Metrics) IncTransition(kind, status string) {
	if m != nil {
		m.Transitions.WithLabelValues(kind, status).Inc()
	}
}

func (m *Metrics) ObserveStats(d time.Duration, failed int) {
	if m != nil {
		m.StatsDuration.Observe(d.Seconds())
		m.StatsFailedCounts.Add(float64(failed))
	}
}

func (m *Metrics) IncStatsCache(result string) {
	if m != nil {
		m.StatsCacheRequests.WithLabelValues(result).Inc()
	}
}
