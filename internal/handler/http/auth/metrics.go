package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// loginRequestsTotal counts POST /auth/token calls by result.
	loginRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_requests_total",
			Help: "Login requests by result",
		},
		[]string{"result"}, // success | invalid_request | invalid_credentials | throttled | error
	)

	loginDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_login_duration_seconds",
			Help:    "Login duration including password hashing",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// bearerRejectionsTotal counts requests refused before reaching a handler.
	bearerRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_bearer_rejections_total",
			Help: "Requests rejected because of their bearer token",
		},
		[]string{"reason"}, // malformed | invalid | inactive
	)
)

// RecordLogin records the result and latency of one login.
func RecordLogin(result string, durationSeconds float64) {
	loginRequestsTotal.WithLabelValues(result).Inc()
	loginDuration.Observe(durationSeconds)
}

// RecordBearerRejection records a refused bearer token.
func RecordBearerRejection(reason string) {
	bearerRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordThrottled counts a login refused by the rate limiter before any
// credential check ran.
func RecordThrottled() {
	loginRequestsTotal.WithLabelValues("throttled").Inc()
}
