// Package metrics defines and registers all custom Prometheus metrics for the
// travel log API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "traveltracker"

// ── Import metrics ────────────────────────────────────────────────────────────

// ImportBatchesTotal counts import batches by file format and outcome.
// Labels:
//   - format: "json" or "csv"
//   - result: "success" (at least one record imported) or "failure"
var ImportBatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_batches_total",
		Help:      "Total number of import batches processed, by format and result.",
	},
	[]string{"format", "result"},
)

// ImportRecordsTotal counts individual records within import batches.
// Labels:
//   - format: "json" or "csv"
//   - result: "imported" or "failed"
var ImportRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_records_total",
		Help:      "Total number of records seen during imports, by format and result.",
	},
	[]string{"format", "result"},
)

// ImportDuration measures how long a full import batch takes, decode included.
// Label:
//   - format: "json" or "csv"
var ImportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Duration of import batch processing.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"format"},
)

// ── Export metrics ────────────────────────────────────────────────────────────

// ExportsTotal counts export requests by format.
// Label:
//   - format: "json" or "csv"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of export requests served, by format.",
	},
	[]string{"format"},
)

// ── Assistant metrics ─────────────────────────────────────────────────────────

// AssistantRequestsTotal counts chat requests by outcome.
// Label:
//   - result: "success" or "error"
var AssistantRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assistant_requests_total",
		Help:      "Total number of assistant chat requests, by result.",
	},
	[]string{"result"},
)

// AssistantDuration measures end-to-end latency of assistant replies.
var AssistantDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "assistant_duration_seconds",
		Help:      "Duration of assistant chat requests including provider latency.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	},
)
