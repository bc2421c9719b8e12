// Package observability exposes Prometheus metrics for the tracker.
// Metrics are registered on the default registry and served by the API
// at /metrics when enabled.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Store Metrics ──────────────────────────────────────────────────────────

// Mutations counts completed state mutations by operation and outcome.
var Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "macrolog",
	Subsystem: "store",
	Name:      "mutations_total",
	Help:      "Total state mutations by operation and result.",
}, []string{"op", "result"})

// PersistFailures counts storage writes that failed.
var PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "macrolog",
	Subsystem: "store",
	Name:      "persist_failures_total",
	Help:      "Total failed writes of the state slot.",
})

// PersistLatency tracks how long a state write takes.
var PersistLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "macrolog",
	Subsystem: "store",
	Name:      "persist_latency_ms",
	Help:      "State slot write latency in milliseconds.",
	Buckets:   []float64{0.5, 1, 2, 5, 10, 25, 50, 100},
})

// LoadFallbacks counts startups that fell back to the default state.
var LoadFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "macrolog",
	Subsystem: "store",
	Name:      "load_fallbacks_total",
	Help:      "Total loads that used the default state, by reason.",
}, []string{"reason"})

// DaysTracked is the current number of day records.
var DaysTracked = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "macrolog",
	Subsystem: "store",
	Name:      "days",
	Help:      "Number of day records in the current state.",
})

// ─── Transfer Metrics ───────────────────────────────────────────────────────

// Imports counts import attempts by result.
var Imports = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "macrolog",
	Subsystem: "transfer",
	Name:      "imports_total",
	Help:      "Total import attempts by result.",
}, []string{"result"})

// Exports counts exports by format.
var Exports = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "macrolog",
	Subsystem: "transfer",
	Name:      "exports_total",
	Help:      "Total exports by format.",
}, []string{"format"})

// ─── Helpers ────────────────────────────────────────────────────────────────

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// ResultLabel maps an error to a result label.
func ResultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObservePersist records one state write.
func ObservePersist(start time.Time, err error) {
	PersistLatency.Observe(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		PersistFailures.Inc()
	}
}
