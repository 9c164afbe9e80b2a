package observability

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "routecore"
	subsystem = "match"
)

// Match attempt results used as metric label values.
const (
	ResultMatched = "matched"
	ResultFailed  = "failed"
)

// MatchMetrics holds the Prometheus metrics for route match attempts.
type MatchMetrics struct {
	AttemptsTotal   *prometheus.CounterVec
	FailuresTotal   *prometheus.CounterVec
	DurationSeconds *prometheus.HistogramVec
}

var (
	matchMetricsInstance *MatchMetrics
	matchMetricsOnce     sync.Once
)

// NewMatchMetrics creates a new MatchMetrics instance. The collectors
// are not registered; call Register with the target registry.
func NewMatchMetrics() *MatchMetrics {
	return &MatchMetrics{
		AttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "attempts_total",
				Help:      "Total number of match attempts by result",
			},
			[]string{"route", "result"},
		),
		FailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "failures_total",
				Help:      "Total number of failed match attempts by reason",
			},
			[]string{"route", "reason"},
		),
		DurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Duration of a single match attempt",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 6),
			},
			[]string{"route"},
		),
	}
}

// GetMatchMetrics returns the singleton match metrics instance.
func GetMatchMetrics() *MatchMetrics {
	matchMetricsOnce.Do(func() {
		matchMetricsInstance = NewMatchMetrics()
	})
	return matchMetricsInstance
}

// Register registers all match metric collectors with the given
// Prometheus registry. AlreadyRegisteredError is silently ignored so
// that routes recreated on config reload do not panic.
func (m *MatchMetrics) Register(registry *prometheus.Registry) {
	for _, c := range m.collectors() {
		if err := registry.Register(c); err != nil {
			if !isAlreadyRegistered(err) {
				panic(err)
			}
		}
	}
}

// RecordAttempt records one completed match attempt.
func (m *MatchMetrics) RecordAttempt(route, result string, duration time.Duration) {
	m.AttemptsTotal.WithLabelValues(route, result).Inc()
	m.DurationSeconds.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordFailure records a failed match attempt by reason.
func (m *MatchMetrics) RecordFailure(route, reason string) {
	m.FailuresTotal.WithLabelValues(route, reason).Inc()
}

// collectors returns all metric collectors for registration.
func (m *MatchMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.AttemptsTotal,
		m.FailuresTotal,
		m.DurationSeconds,
	}
}

// isAlreadyRegistered returns true if the error indicates the
// collector was already registered with the registry.
func isAlreadyRegistered(err error) bool {
	var are prometheus.AlreadyRegisteredError
	return errors.As(err, &are)
}
