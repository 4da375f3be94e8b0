package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/responsewriter"
	"newspaper-agency/internal/observability/metrics"
	"newspaper-agency/internal/observability/slo"
)

// MetricsMiddleware records request count, latency and response size, and
// feeds the SLO tracker.
// Paths are normalized (/topics/12 -> /topics/:id) to bound label
// cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		path := pathutil.NormalizePath(r.URL.Path)
		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)

		status := wrapped.StatusCode()
		metrics.RecordHTTPRequest(r.Method, path, strconv.Itoa(status),
			time.Since(start), wrapped.BytesWritten())
		slo.Default.Observe(status)
	})
}

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
