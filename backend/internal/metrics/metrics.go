// Package metrics exposes Prometheus instrumentation for the recommender.
//
// Metrics are registered on the default registry and served at /metrics:
//   - llm_requests_total{provider,outcome} and llm_request_duration_seconds{provider}
//   - chat_routes_total{route}: "query" when a generated Cypher statement was used, "direct" otherwise
//   - graph_generated_query_failures_total: generated statements the store rejected
//   - fitness_parse_failures_total: model outputs that did not match the score schema
//   - http_requests_total{method,route,status} and http_request_duration_seconds{method,route}
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	RouteQuery  = "query"
	RouteDirect = "direct"
)

var (
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "LLM completion requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "LLM completion latency",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	ChatRoutes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_routes_total",
			Help: "Free chat turns by routing decision",
		},
		[]string{"route"},
	)

	GeneratedQueryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "graph_generated_query_failures_total",
			Help: "Generated graph queries that failed to execute",
		},
	)

	FitnessParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitness_parse_failures_total",
			Help: "Fitness score responses that failed schema validation",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordLLMCall records one completion request
func RecordLLMCall(provider string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	LLMRequests.WithLabelValues(provider, outcome).Inc()
	LLMRequestDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// RecordRoute records the routing decision of a chat turn
func RecordRoute(needsQuery bool) {
	if needsQuery {
		ChatRoutes.WithLabelValues(RouteQuery).Inc()
		return
	}
	ChatRoutes.WithLabelValues(RouteDirect).Inc()
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
