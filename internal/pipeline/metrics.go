package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricScorerRunsTotal       = "scorer_runs_total"
	MetricScorerErrorsTotal     = "scorer_errors_total"
	MetricScorerCandidatesTotal = "scorer_candidates_total"
	MetricScorerDuration        = "scorer_duration_seconds"
)

// Metrics contains Prometheus metrics for scorer runs, labelled by scorer name.
// All operations are thread-safe.
type Metrics struct {
	runsTotal       *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	candidatesTotal *prometheus.CounterVec
	duration        *prometheus.HistogramVec
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricScorerRunsTotal,
				Help: "Total number of scorer invocations",
			},
			[]string{"scorer"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricScorerErrorsTotal,
				Help: "Total number of scorer invocations that returned an error",
			},
			[]string{"scorer"},
		),
		candidatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricScorerCandidatesTotal,
				Help: "Total number of candidates scored",
			},
			[]string{"scorer"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricScorerDuration,
				Help:    "Histogram of scorer run duration in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"scorer"},
		),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRun records one completed scorer run.
func (m *Metrics) ObserveRun(scorer string, candidates int, seconds float64, err error) {
	m.runsTotal.WithLabelValues(scorer).Inc()
	m.candidatesTotal.WithLabelValues(scorer).Add(float64(candidates))
	m.duration.WithLabelValues(scorer).Observe(seconds)
	if err != nil {
		m.errorsTotal.WithLabelValues(scorer).Inc()
	}
}

// Collectors returns all Prometheus collectors for testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.runsTotal,
		m.errorsTotal,
		m.candidatesTotal,
		m.duration,
	}
}
