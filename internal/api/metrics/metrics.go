// Package metrics defines and registers the custom Prometheus metrics of the
// task API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Call Register once per registry at startup; the router does this with the
// registry that backs its /metrics route.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tasks"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TaskOperationsTotal counts successful task operations.
// Label:
//   - operation: "create", "get", "list", "update" or "delete"
var TaskOperationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_operations_total",
		Help:      "Total number of successful task operations, by operation.",
	},
	[]string{"operation"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", "rate_limited" or "error"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token checks made by the auth middleware.
// Label:
//   - result: "valid", "invalid" or "missing"
var TokenVerificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, labelled by result.",
	},
	[]string{"result"},
)

// Register adds every custom metric to reg. Metrics already present in reg
// are skipped, so building several routers on one registry is safe.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		TaskOperationsTotal,
		LoginAttemptsTotal,
		TokenVerificationsTotal,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
