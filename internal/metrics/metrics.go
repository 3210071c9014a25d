// Package metrics exposes Prometheus collectors for chat and provider traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chathx"

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
)

// Metrics tracks chat requests and outbound provider calls.
//
// Metrics:
//   - chathx_chat_requests_total: chat requests by outcome
//   - chathx_provider_requests_total: provider calls by provider, model and outcome
//   - chathx_provider_latency_seconds: provider call latency
type Metrics struct {
	registry *prometheus.Registry

	chatRequests     *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_requests_total",
				Help:      "Total number of chat requests by outcome",
			},
			[]string{"outcome"},
		),

		providerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Total number of requests to each provider",
			},
			[]string{"provider", "model", "outcome"},
		),

		providerLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_latency_seconds",
				Help:      "Provider API call latency in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"provider", "model"},
		),
	}

	m.registry.MustRegister(
		m.chatRequests,
		m.providerRequests,
		m.providerLatency,
	)
	return m
}

// ObserveChat records the outcome of a chat request.
func (m *Metrics) ObserveChat(outcome string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(outcome).Inc()
}

// ObserveProvider records one provider call.
func (m *Metrics) ObserveProvider(provider, model, outcome string, latency time.Duration) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(provider, model, outcome).Inc()
	m.providerLatency.WithLabelValues(provider, model).Observe(latency.Seconds())
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
