// Package metrics defines and registers all custom Prometheus metrics for the
// forum API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics use promauto, so importing the package registers everything with the
// default Prometheus registry before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forum"

// ── Authentication metrics ────────────────────────────────────────────────────

// SignInsTotal counts successful sign-ins.
var SignInsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of successful sign-ins.",
	},
)

// SignOutsTotal counts successful sign-outs.
var SignOutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signouts_total",
		Help:      "Total number of successful sign-outs.",
	},
)

// AuthFailuresTotal counts rejected requests, labelled by the stable error
// code returned to the client (e.g. "ATHR-001", "ATHR-002", "ATH-002").
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication failures, by error code.",
	},
	[]string{"code"},
)

// AuthzDenialsTotal counts authorization denials (authenticated caller,
// insufficient capability), labelled by the denied route.
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of authorization denials, by route.",
	},
	[]string{"route"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// QuestionsCreatedTotal counts newly posted questions.
var QuestionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_created_total",
		Help:      "Total number of questions posted.",
	},
)

// AnswersCreatedTotal counts newly posted answers.
var AnswersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_created_total",
		Help:      "Total number of answers posted.",
	},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditProcessedTotal counts audit events that completed processing.
// Label:
//   - action: the recorded action (e.g. "user.signin", "question.deleted")
var AuditProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_processed_total",
		Help:      "Total number of audit events successfully recorded.",
	},
	[]string{"action"},
)

// AuditErrorsTotal counts audit events that failed processing.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit events that failed processing.",
	},
)

// AuditDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, recorded)
var AuditDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dedup_total",
		Help:      "Total number of audit deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the current number of audit events waiting in each
// dispatcher worker channel.
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

// ── Session cache metrics ─────────────────────────────────────────────────────

// SessionCacheTotal counts session cache lookups.
// Label:
//   - result: "hit" or "miss"
var SessionCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_cache_total",
		Help:      "Total number of session cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
