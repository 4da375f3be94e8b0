package metrics

import (
	"time"
)

// RecordLifecycleOperation records the outcome and latency of one
// list/get/create/update/delete/register call.
func RecordLifecycleOperation(kind, op, outcome string, duration time.Duration) {
	LifecycleOperationsTotal.WithLabelValues(kind, op, outcome).Inc()
	LifecycleOperationDuration.WithLabelValues(kind, op).Observe(duration.Seconds())
}

// RecordAuthzDecision records a gate decision.
func RecordAuthzDecision(kind, op string, allowed bool) {
	result := "allow"
	if !allowed {
		result = "deny"
	}
	AuthzDecisionsTotal.WithLabelValues(kind, op, result).Inc()
}

// RecordCascade records newspapers removed together with their topic.
func RecordCascade(count int64) {
	if count > 0 {
		CascadedNewspapersTotal.Add(float64(count))
	}
}

// RecordRegistration records a new account. selfService is true for
// anonymous sign-up.
func RecordRegistration(selfService bool) {
	channel := "staff"
	if selfService {
		channel = "self"
	}
	RegistrationsTotal.WithLabelValues(channel).Inc()
}

// UpdateEntitiesTotal sets the stored record count for kind.
func UpdateEntitiesTotal(kind string, count int64) {
	EntitiesTotal.WithLabelValues(kind).Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// SetCircuitBreakerState publishes the numeric state of breaker name.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
