// Package metrics defines and registers all custom Prometheus metrics for
// the RecipeHub web gateway. It is the single source of truth for metric
// names, labels, and help strings; metrics self-register with the default
// registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipehub_web"

// ── Backend call metrics ──────────────────────────────────────────────────────

// BackendRequestsTotal counts calls forwarded to the recipe backend.
// Labels:
//   - method: HTTP method of the outgoing request
//   - status: numeric HTTP status of the backend response, or "error" when
//     no response was received
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests forwarded to the recipe backend.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures the round-trip time of backend calls.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of round trips to the recipe backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// AuthRejectionsTotal counts backend responses that rejected the stored
// credential and therefore triggered the clear-and-redirect sequence.
var AuthRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of backend responses rejecting a stored credential.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuthEventsRecordedTotal counts audit events written to the trail.
// Label:
//   - kind: the event kind (login, logout, forced_logout, ...)
var AuthEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_recorded_total",
		Help:      "Total number of session audit events persisted.",
	},
	[]string{"kind"},
)

// AuthEventsDedupTotal counts forced-logout deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, recorded)
var AuthEventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_dedup_total",
		Help:      "Total number of forced-logout dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
