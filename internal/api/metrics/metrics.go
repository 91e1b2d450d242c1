// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings; everything is registered with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successful registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "role_mismatch"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Portfolio metrics ─────────────────────────────────────────────────────────

// PortfoliosCreatedTotal counts newly created builder portfolios.
var PortfoliosCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "portfolios_created_total",
		Help:      "Total number of builder portfolios created.",
	},
)

// PastWorksTotal counts past-work list mutations.
// Label:
//   - action: "added" or "removed"
var PastWorksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pastworks_total",
		Help:      "Total number of past-work entries added and removed.",
	},
	[]string{"action"},
)

// MediaUploadDuration measures a single upload to the media host.
// Label:
//   - kind: "logo" or "pastwork_image"
var MediaUploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "media_upload_duration_seconds",
		Help:      "Duration of uploads to the external media host.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── Assistant metrics ─────────────────────────────────────────────────────────

// AssistantRequestsTotal counts assistant messages.
// Label:
//   - result: "ok", "degraded" (model failure swallowed) or "greeting"
var AssistantRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assistant_requests_total",
		Help:      "Total number of assistant messages handled, by result.",
	},
	[]string{"result"},
)

// AssistantReplyDuration measures end-to-end model invocation latency.
var AssistantReplyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "assistant_reply_duration_seconds",
		Help:      "Duration of external model calls, successful or not.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
)
