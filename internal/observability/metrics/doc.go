// Package metrics provides Prometheus metrics registry and recording utilities.
//
// Metrics cover HTTP traffic, lifecycle operations on topics, newspapers and
// redactors, authorization decisions and the database pool. All metrics are
// registered with the default registry and exposed via /metrics.
//
//	start := time.Now()
//	err := svc.Delete(ctx, actor, id)
//	metrics.RecordLifecycleOperation("topic", "delete", entity.Outcome(err), time.Since(start))
package metrics
