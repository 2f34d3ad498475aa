package graph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus metrics for graph execution.
//
// Metrics exposed (all namespaced with "stategraph_"):
//
//   - inflight_invocations (gauge): invocations currently running. Labels: graph.
//   - invocations_total (counter): finished invocations. Labels: graph, status.
//   - invocation_duration_ms (histogram): invocation wall time. Labels: graph, status.
//   - steps_total (counter): node executions. Labels: graph, node_id, status.
//   - step_latency_ms (histogram): node execution duration. Labels: graph, node_id, status.
//   - routes_total (counter): conditional routing decisions. Labels: graph, from, route_key.
//
// Run IDs are deliberately not a label; they would create a series per invocation.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := graph.NewMetrics(registry)
//	compiled, _ := builder.Compile(graph.WithMetrics(metrics))
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// All methods are safe for concurrent use.
type Metrics struct {
	inflight           *prometheus.GaugeVec
	invocations        *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	steps              *prometheus.CounterVec
	stepLatency        *prometheus.HistogramVec
	routes             *prometheus.CounterVec
}

// NewMetrics creates and registers all graph execution metrics with registry.
// A nil registry uses prometheus.DefaultRegisterer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	latencyBuckets := []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000}

	return &Metrics{
		inflight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stategraph",
			Name:      "inflight_invocations",
			Help:      "Number of graph invocations currently executing",
		}, []string{"graph"}),

		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stategraph",
			Name:      "invocations_total",
			Help:      "Finished graph invocations by outcome",
		}, []string{"graph", "status"}),

		invocationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stategraph",
			Name:      "invocation_duration_ms",
			Help:      "Graph invocation duration in milliseconds from START to END or failure",
			Buckets:   latencyBuckets,
		}, []string{"graph", "status"}),

		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stategraph",
			Name:      "steps_total",
			Help:      "Node executions by outcome",
		}, []string{"graph", "node_id", "status"}),

		stepLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stategraph",
			Name:      "step_latency_ms",
			Help:      "Node execution duration in milliseconds",
			Buckets:   latencyBuckets,
		}, []string{"graph", "node_id", "status"}),

		routes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stategraph",
			Name:      "routes_total",
			Help:      "Conditional edge routing decisions by route key",
		}, []string{"graph", "from", "route_key"}),
	}
}

func (m *Metrics) invocationStarted(graphName string) {
	m.inflight.WithLabelValues(graphName).Inc()
}

func (m *Metrics) invocationFinished(graphName, status string, d time.Duration) {
	m.inflight.WithLabelValues(graphName).Dec()
	m.invocations.WithLabelValues(graphName, status).Inc()
	m.invocationDuration.WithLabelValues(graphName, status).Observe(float64(d.Milliseconds()))
}

// status: success, error
func (m *Metrics) recordStep(graphName, nodeID string, d time.Duration, status string) {
	m.steps.WithLabelValues(graphName, nodeID, status).Inc()
	m.stepLatency.WithLabelValues(graphName, nodeID, status).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) recordRoute(graphName, from, key string) {
	m.routes.WithLabelValues(graphName, from, key).Inc()
}
