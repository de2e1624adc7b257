package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "eliza"

// Metrics exposes Prometheus collectors that report chat activity.
type Metrics struct {
	turns           *prometheus.CounterVec
	turnErrors      prometheus.Counter
	turnDuration    prometheus.Histogram
	sessionsActive  prometheus.Gauge
	sessionsEvicted prometheus.Counter
}

// MustNewMetrics constructs a Metrics instance using the provided registerer.
// The caller is responsible for supplying a fresh registry when unique metric
// names are required (for example in tests). Any registration error will panic
// which mirrors the semantics of promauto helpers and surfaces configuration
// bugs early.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turns_total",
				Help:      "Chat turns answered, by response source.",
			},
			[]string{"source"},
		),
		turnErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turn_errors_total",
				Help:      "Chat turns that produced no response.",
			},
		),
		turnDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "turn_duration_seconds",
				Help:      "Time spent answering a chat turn.",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
		),
		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_active",
				Help:      "Chat sessions currently held in memory.",
			},
		),
		sessionsEvicted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_evicted_total",
				Help:      "Chat sessions dropped because the store was full.",
			},
		),
	}
	reg.MustRegister(m.turns, m.turnErrors, m.turnDuration, m.sessionsActive, m.sessionsEvicted)
	return m
}

// ObserveTurn records an answered turn.
func (m *Metrics) ObserveTurn(source string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.turnDuration.Observe(d.Seconds())
	if err != nil {
		m.turnErrors.Inc()
		return
	}
	m.turns.WithLabelValues(source).Inc()
}

// SessionOpened increments the active sessions gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
}

// SessionClosed decrements the active sessions gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// SessionEvicted records a session dropped by the store.
func (m *Metrics) SessionEvicted() {
	if m == nil {
		return
	}
	m.sessionsEvicted.Inc()
	m.sessionsActive.Dec()
}
