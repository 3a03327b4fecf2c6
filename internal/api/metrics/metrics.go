// Package metrics defines and registers the custom Prometheus metrics of the
// retail inventory service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry on package load through
// promauto; /metrics exposes them next to the echo request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "retail"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// SessionsTotal counts session lifecycle events.
// Label:
//   - event: "created", "destroyed" or "expired"
var SessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)

// AccessDeniedTotal counts requests stopped by a route guard.
// Label:
//   - guard: "auth" or "admin"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by a route guard.",
	},
	[]string{"guard"},
)

// ── Activity log ──────────────────────────────────────────────────────────────

// ActivityRecordsTotal counts activity log writes.
// Labels:
//   - type: activity type (e.g. "LOGIN")
//   - result: "written", "failed" or "dropped"
var ActivityRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_records_total",
		Help:      "Total number of activity records, by type and write result.",
	},
	[]string{"type", "result"},
)

// ActivityQueueDepth tracks records waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Inventory & chatbot ───────────────────────────────────────────────────────

// InventoryChangesTotal counts successful inventory mutations.
// Label:
//   - op: "add" or "delete"
var InventoryChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_changes_total",
		Help:      "Total number of inventory mutations, by operation.",
	},
	[]string{"op"},
)

// ChatbotQueriesTotal counts chatbot messages by the rule that answered them.
// Label:
//   - intent: rule name (e.g. "greeting", "low_stock", "fallback")
var ChatbotQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chatbot_queries_total",
		Help:      "Total number of chatbot messages, by matched intent.",
	},
	[]string{"intent"},
)
