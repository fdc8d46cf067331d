package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paystack"

// Gateway call outcomes
const (
	OutcomeSuccess      = "success"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRejected     = "rejected"
	OutcomeHTTPError    = "http_error"
)

// Metrics holds the collectors this service exports. Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	gatewayRequests  *prometheus.CounterVec
	gatewayDuration  *prometheus.HistogramVec
	callbackOutcomes *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Gateway API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		gatewayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Gateway API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		callbackOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_outcomes_total",
			Help:      "Payment callback results by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.gatewayRequests,
		m.gatewayDuration,
		m.callbackOutcomes,
	)
	return m
}

// ObserveGatewayCall records one gateway round trip
func (m *Metrics) ObserveGatewayCall(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.gatewayRequests.WithLabelValues(operation, outcome).Inc()
	m.gatewayDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveCallback records the outcome of one callback
func (m *Metrics) ObserveCallback(outcome string) {
	if m == nil {
		return
	}
	m.callbackOutcomes.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// CallbackOutcomes exposes the callback counter
func (m *Metrics) CallbackOutcomes() *prometheus.CounterVec {
	return m.callbackOutcomes
}
