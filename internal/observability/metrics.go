package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Target outcomes recorded by Metrics.
const (
	OutcomeFinal    = "final"
	OutcomeFailure  = "failure"
	OutcomeCanceled = "canceled"
)

// Status labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the stream engine's prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	targetsStarted *prometheus.CounterVec
	targetOutcomes *prometheus.CounterVec
	firstDelta     *prometheus.HistogramVec
	targetLatency  *prometheus.HistogramVec
	activeTargets  prometheus.Gauge
	requests       *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
	catalogSize    prometheus.Gauge
}

// NewMetrics creates and registers the collectors on registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,
		targetsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llmcompare_targets_started_total",
				Help: "Number of provider streams dispatched",
			},
			[]string{"provider"},
		),
		targetOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llmcompare_target_outcomes_total",
				Help: "Number of provider streams by terminal outcome",
			},
			[]string{"provider", "outcome"},
		),
		firstDelta: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llmcompare_time_to_first_delta_seconds",
				Help:    "Time from dispatch to the first text delta",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"provider"},
		),
		targetLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llmcompare_target_latency_seconds",
				Help:    "Time from dispatch to the terminal event",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),
		activeTargets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "llmcompare_active_targets",
				Help: "Provider streams currently in flight",
			},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llmcompare_requests_total",
				Help: "Streaming requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llmcompare_catalog_refreshes_total",
				Help: "Pricing catalog refresh attempts by status",
			},
			[]string{"status"},
		),
		catalogSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "llmcompare_catalog_models",
				Help: "Models in the current pricing catalog snapshot",
			},
		),
	}

	collectors := []prometheus.Collector{
		m.targetsStarted,
		m.targetOutcomes,
		m.firstDelta,
		m.targetLatency,
		m.activeTargets,
		m.requests,
		m.refreshes,
		m.catalogSize,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// TargetStarted records a dispatched stream.
func (m *Metrics) TargetStarted(provider string) {
	if m == nil {
		return
	}
	m.targetsStarted.WithLabelValues(provider).Inc()
	m.activeTargets.Inc()
}

// FirstDelta records the time to a target's first delta.
func (m *Metrics) FirstDelta(provider string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.firstDelta.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// TargetFinished records a target's terminal outcome.
func (m *Metrics) TargetFinished(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.activeTargets.Dec()
	m.targetOutcomes.WithLabelValues(provider, outcome).Inc()
	if outcome != OutcomeCanceled {
		m.targetLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}

// RequestServed records a streaming request outcome.
func (m *Metrics) RequestServed(operation, status string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, status).Inc()
}

// CatalogRefreshed records a catalog refresh attempt. size is ignored on failure.
func (m *Metrics) CatalogRefreshed(status string, size int) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(status).Inc()
	if status == StatusOK {
		m.catalogSize.Set(float64(size))
	}
}
