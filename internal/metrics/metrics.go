// Package metrics defines Prometheus metrics for relgraph.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relgraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relgraph_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relgraph_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	FetchRoundTrips = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relgraph_fetch_round_trips",
			Help:    "Database round trips per graph operation",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"operation"},
	)

	TraversalNodes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relgraph_traversal_nodes",
			Help:    "Visited node count per graph operation",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		},
		[]string{"operation"},
	)

	GuardDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relgraph_guard_decisions_total",
			Help: "Pre-flight guard decisions by outcome",
		},
		[]string{"decision"},
	)

	LimitAborts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relgraph_limit_aborts_total",
			Help: "Operations aborted on a safety limit",
		},
		[]string{"limit"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		FetchRoundTrips, TraversalNodes,
		GuardDecisions, LimitAborts,
	)
}
