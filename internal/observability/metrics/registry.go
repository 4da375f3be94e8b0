package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agency"

var (
	routeLabels  = []string{"method", "path", "status"}
	actionLabels = []string{"kind", "op"}
)

// Request traffic, labelled by route pattern rather than raw path.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "http", Name: "requests_total",
		Help: "HTTP requests by method, route and status.",
	}, routeLabels)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "http", Name: "request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, routeLabels)

	HTTPResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "http", Name: "response_size_bytes",
		Help:    "HTTP response body size.",
		Buckets: prometheus.ExponentialBuckets(100, 10, 8),
	}, []string{"method", "path"})

	// ActiveConnections is the number of requests currently being served.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "http", Name: "active_connections",
		Help: "In-flight HTTP requests.",
	})
)

// Agency records and the operations applied to them.
var (
	EntitiesTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Name: "entities_total",
		Help: "Stored records by kind (topic, newspaper, redactor).",
	}, []string{"kind"})

	LifecycleOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "lifecycle_operations_total",
		Help: "Lifecycle operations by kind, operation and outcome.",
	}, []string{"kind", "op", "outcome"})

	LifecycleOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "lifecycle_operation_duration_seconds",
		Help:    "Lifecycle operation latency.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, actionLabels)

	AuthzDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "authz_decisions_total",
		Help: "Authorization gate decisions by kind, operation and result.",
	}, []string{"kind", "op", "result"})

	// CascadedNewspapersTotal counts newspapers removed with their topic.
	CascadedNewspapersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "cascaded_newspapers_total",
		Help: "Newspapers deleted by a topic cascade.",
	})

	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "registrations_total",
		Help: "Redactor accounts created, by channel (self, staff).",
	}, []string{"channel"})
)

// Database pool and breaker.
var (
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "db", Name: "query_duration_seconds",
		Help:    "Latency of statements sent through the breaker.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"operation"})

	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "db", Name: "connections_active",
		Help: "Pool connections in use.",
	})

	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "db", Name: "connections_idle",
		Help: "Idle pool connections.",
	})

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
	}, []string{"name"})
)

// RecordHTTPRequest records one served request. Empty bodies are not
// observed in the size histogram.
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
