// Package metrics exposes Prometheus instruments for view compilation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "dtc"
	parserSubsystem  = "parser"
)

// Result labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the parser instruments. A nil *Metrics records nothing.
type Metrics struct {
	// ViewsParsedTotal counts view parses.
	// Labels: status (success, error)
	ViewsParsedTotal *prometheus.CounterVec

	// ErrorsTotal counts failed parses.
	// Labels: kind (lexical, structural, resolution, grammar, unknown)
	ErrorsTotal *prometheus.CounterVec

	// ParseDurationSeconds measures the time spent parsing one view
	ParseDurationSeconds prometheus.Histogram

	// NodesTotal counts top-level template nodes produced
	NodesTotal prometheus.Counter
}

// New creates the instruments and registers them with reg. A nil reg
// leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ViewsParsedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: parserSubsystem,
			Name:      "views_parsed_total",
			Help:      "Total number of view parses by status",
		}, []string{"status"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: parserSubsystem,
			Name:      "errors_total",
			Help:      "Total number of failed view parses by error kind",
		}, []string{"kind"}),
		ParseDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: parserSubsystem,
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing a single view",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		NodesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: parserSubsystem,
			Name:      "nodes_total",
			Help:      "Total number of top-level template nodes produced",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.ViewsParsedTotal, m.ErrorsTotal, m.ParseDurationSeconds, m.NodesTotal)
	}
	return m
}

// RecordSuccess records a successful parse producing nodes top-level nodes
func (m *Metrics) RecordSuccess(duration time.Duration, nodes int) {
	if m == nil {
		return
	}
	m.ViewsParsedTotal.WithLabelValues(StatusSuccess).Inc()
	m.ParseDurationSeconds.Observe(duration.Seconds())
	m.NodesTotal.Add(float64(nodes))
}

// RecordFailure records a failed parse. kind is the error kind label.
func (m *Metrics) RecordFailure(duration time.Duration, kind string) {
	if m == nil {
		return
	}
	m.ViewsParsedTotal.WithLabelValues(StatusError).Inc()
	m.ErrorsTotal.WithLabelValues(kind).Inc()
	m.ParseDurationSeconds.Observe(duration.Seconds())
}
