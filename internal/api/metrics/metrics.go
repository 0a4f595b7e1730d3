// Package metrics defines all custom Prometheus metrics for the task tracker
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via promauto
// and are exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tasktracker"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts successfully created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
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

// AuthRejectedTotal counts requests turned away by the auth middleware.
// Label:
//   - reason: "missing_header", "malformed_header", "malformed_token",
//     "invalid_signature", or "expired"
var AuthRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejected_total",
		Help:      "Total number of requests rejected before reaching a handler, by reason.",
	},
	[]string{"reason"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TaskOperationsTotal counts completed task operations.
// Label:
//   - op: "create", "list", "get", "update", or "delete"
var TaskOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_operations_total",
		Help:      "Total number of successful task operations, by operation.",
	},
	[]string{"op"},
)

// ── Purge pipeline metrics ────────────────────────────────────────────────────

// PurgesProcessedTotal counts account-deletion purges that completed.
var PurgesProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purges_processed_total",
		Help:      "Total number of task purges completed after account deletion.",
	},
)

// PurgeErrorsTotal counts purges that failed.
// Label:
//   - reason: short failure description (e.g. "delete_failed", "dedup_failed")
var PurgeErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purge_errors_total",
		Help:      "Total number of task purges that failed, by reason.",
	},
	[]string{"reason"},
)

// PurgeDedupTotal counts purge deduplication decisions.
// Label:
//   - result: "hit" (replay, skipped) or "miss" (new purge, processed)
var PurgeDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purge_dedup_total",
		Help:      "Total number of purge deduplication checks, by result (hit/miss).",
	},
	[]string{"result"},
)

// PurgeDuration measures how long a single purge takes end-to-end.
var PurgeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "purge_duration_seconds",
		Help:      "Duration of a task purge from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
)
