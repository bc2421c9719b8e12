package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── HTTP Metrics ───────────────────────────────────────────────────────────

// HTTPRequests counts API requests by route pattern, method and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "macrolog",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total API requests by route, method and status code.",
}, []string{"route", "method", "status"})

// HTTPLatency tracks API handler latency by route pattern.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "macrolog",
	Subsystem: "http",
	Name:      "request_latency_ms",
	Help:      "API handler latency in milliseconds.",
	Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 1000},
}, []string{"route"})

// ObserveRequest records one finished request. route should be the router
// pattern (e.g. "/api/days/{day}"), not the raw path, to bound cardinality.
func ObserveRequest(route, method string, status int, start time.Time) {
	if route == "" {
		route = "unmatched"
	}
	if status == 0 {
		status = 200
	}
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route).Observe(float64(time.Since(start).Microseconds()) / 1000)
}
