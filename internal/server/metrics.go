package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus instruments on a private registry
// so tests can run servers side by side without collector collisions.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.SummaryVec
	upstream    *prometheus.CounterVec
}

// NewMetrics registers the tool-server instruments.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.invocations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insight",
		Name:      "tool_invocations_total",
		Help:      "Tool invocations by tool name and outcome",
	}, []string{"tool", "status"})

	m.duration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "insight",
		Name:      "tool_duration_seconds",
		Help:      "Time spent executing tool invocations",
	}, []string{"tool"})

	m.upstream = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insight",
		Name:      "upstream_requests_total",
		Help:      "LocalRank API requests by endpoint template and status",
	}, []string{"endpoint", "status"})

	m.registry.MustRegister(m.invocations, m.duration, m.upstream)
	return m
}

// ObserveInvocation records one tool call's outcome and latency.
func (m *Metrics) ObserveInvocation(tool string, ok bool, d time.Duration) {
	status := "ok"
	if !ok {
		status = "error"
	}
	m.invocations.WithLabelValues(tool, status).Inc()
	m.duration.WithLabelValues(tool).Observe(d.Seconds())
}

// UpstreamObserver adapts the upstream counter to the LocalRank client's
// observer hook. Status 0 marks requests that never got a response.
func (m *Metrics) UpstreamObserver() func(endpoint string, status int) {
	return func(endpoint string, status int) {
		label := "error"
		if status > 0 {
			label = strconv.Itoa(status)
		}
		m.upstream.WithLabelValues(endpoint, label).Inc()
	}
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
