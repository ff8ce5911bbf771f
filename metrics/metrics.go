// Package metrics provides Prometheus metrics for the web client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendCallsTotal counts calls to the analysis backend.
	BackendCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "analysisweb",
			Name:      "backend_calls_total",
			Help:      "Total number of analysis backend calls",
		},
		[]string{"operation", "outcome"},
	)

	// BackendCallDuration measures backend round trips.
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "analysisweb",
			Name:      "backend_call_duration_seconds",
			Help:      "Duration of analysis backend calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// PageRequestsTotal counts rendered pages.
	PageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "analysisweb",
			Name:      "page_requests_total",
			Help:      "Total number of page requests",
		},
		[]string{"route", "method"},
	)
)

// Call outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport_error"
	OutcomeResponse  = "response_error"
	OutcomeDecode    = "decode_error"
)

// RecordCall records one backend call.
func RecordCall(operation, outcome string, seconds float64) {
	BackendCallsTotal.WithLabelValues(operation, outcome).Inc()
	BackendCallDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordPage records one page request.
func RecordPage(route, method string) {
	PageRequestsTotal.WithLabelValues(route, method).Inc()
}
