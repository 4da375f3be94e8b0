// Package slo publishes rolling availability and error-rate ratios of the
// public API next to their targets.
package slo

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// AvailabilityTarget is the share of requests that must not fail with 5xx.
	AvailabilityTarget = 0.999
	// ErrorRateTarget is the highest acceptable share of 5xx responses.
	ErrorRateTarget = 0.001
)

var (
	availability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agency_slo_availability_ratio",
		Help: "Share of non-5xx responses in the last window (target 0.999)",
	})
	errorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agency_slo_error_rate_ratio",
		Help: "Share of 5xx responses in the last window (target 0.001)",
	})
)

// Tracker counts responses and publishes the ratios once per window.
type Tracker struct {
	mu     sync.Mutex
	total  int64
	failed int64
}

// Default is the tracker fed by the HTTP metrics middleware.
var Default = &Tracker{}

// Observe records one response status.
func (t *Tracker) Observe(status int) {
	t.mu.Lock()
	t.total++
	if status >= 500 {
		t.failed++
	}
	t.mu.Unlock()
}

// Publish sets the gauges from the current window and starts a new one. An
// empty window leaves the gauges unchanged and reports ok=false.
func (t *Tracker) Publish() (avail, errRate float64, ok bool) {
	t.mu.Lock()
	total, failed := t.total, t.failed
	t.total, t.failed = 0, 0
	t.mu.Unlock()

	if total == 0 {
		return 0, 0, false
	}
	errRate = float64(failed) / float64(total)
	avail = 1 - errRate
	availability.Set(avail)
	errorRate.Set(errRate)
	return avail, errRate, true
}

// Run publishes every interval until ctx is done.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.Publish()
		}
	}
}
