// Package metrics declares the custom Prometheus metrics of the DMM API.
// Everything registers on the default registry at init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dmm"

// ── Auth ──────────────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials), "invalid" (missing fields) or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthorizationDeniedTotal counts requests rejected by a role policy.
var AuthorizationDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denied_total",
		Help:      "Total number of requests rejected by a role policy, by role.",
	},
	[]string{"role"},
)

// ── Assignments ───────────────────────────────────────────────────────────────

// AssignmentChangesTotal counts single link changes applied through the API.
// Labels:
//   - owner: "proyecto" or "capacitacion"
//   - relation: "beneficiarios" or "sectores"
//   - action: "assign" or "remove"
var AssignmentChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignment_changes_total",
		Help:      "Total number of assignment changes, by owner, relation and action.",
	},
	[]string{"owner", "relation", "action"},
)

// ── Store ─────────────────────────────────────────────────────────────────────

// ProcedureDuration measures stored-procedure calls.
// Labels:
//   - procedure: the procedure name
//   - outcome: "ok" or "error"
var ProcedureDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "procedure_duration_seconds",
		Help:      "Duration of stored-procedure calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"procedure", "outcome"},
)

// DocumentUploadsTotal counts identity-document images written to object storage.
var DocumentUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_uploads_total",
		Help:      "Total number of DPI images uploaded, by side.",
	},
	[]string{"side"},
)

// ── Gateway ───────────────────────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
)

// AuditDroppedTotal counts audit entries dropped because the queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped on a full queue.",
	},
)
