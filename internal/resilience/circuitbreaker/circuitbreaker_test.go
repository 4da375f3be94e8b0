package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sony/gobreaker"
)

func TestCircuitBreaker_TripsOpen(t *testing.T) {
	cb := New(Config{
		Name:             "test-circuit",
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          1 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	})

	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("expected initial state=Closed, got %v", cb.State())
	}

	testErr := errors.New("test error")
	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (any, error) { return nil, testErr })
		if err != testErr {
			t.Errorf("request %d: expected test error, got %v", i, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected Open after 5 failures, got %v", cb.State())
	}

	_, err := cb.Execute(func() (any, error) {
		t.Error("function should not be called when circuit is open")
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := New(Config{
		Name:             "test-circuit",
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      5,
	})

	testErr := errors.New("test error")
	for i := 0; i < 6; i++ {
		_, _ = cb.Execute(func() (any, error) { return nil, testErr })
	}
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("circuit should be open, got %v", cb.State())
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := cb.Execute(func() (any, error) { return "ok", nil }); err != nil {
		t.Errorf("expected success in half-open state, got %v", err)
	}
	if cb.IsOpen() {
		t.Error("circuit should not be open after a successful half-open request")
	}
}

func TestCircuitBreaker_IgnoresCallerOutcomes(t *testing.T) {
	cb := New(Config{Name: "ignore", MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 1.0, MinRequests: 3})

	for i := 0; i < 10; i++ {
		_, _ = cb.Execute(func() (any, error) { return nil, fmt.Errorf("get: %w", sql.ErrNoRows) })
		_, _ = cb.Execute(func() (any, error) { return nil, context.Canceled })
	}
	if cb.IsOpen() {
		t.Error("missing rows and cancelled requests must not trip the breaker")
	}
}

func TestHealthyOutcome(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"no rows", fmt.Errorf("get: %w", sql.ErrNoRows), true},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres admin shutdown", &pgconn.PgError{Code: "57P01"}, false},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, true},
		{"sqlite io", sqlite3.Error{Code: sqlite3.ErrIoErr}, false},
		{"timeout", context.DeadlineExceeded, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := healthyOutcome(tc.err); got != tc.want {
				t.Errorf("healthyOutcome(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestGuard_KeepsType(t *testing.T) {
	cb := New(DefaultConfig("guard"))
	n, err := guard(cb, func() (int, error) { return 42, nil })
	if err != nil || n != 42 {
		t.Fatalf("guard = %d, %v", n, err)
	}
	testErr := errors.New("boom")
	n, err = guard(cb, func() (int, error) { return 7, testErr })
	if !errors.Is(err, testErr) || n != 0 {
		t.Errorf("guard on error = %d, %v; want 0, %v", n, err, testErr)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("test")
	if cfg.Name != "test" {
		t.Errorf("expected Name='test', got %q", cfg.Name)
	}
	if cfg.FailureThreshold <= 0 || cfg.FailureThreshold > 1 {
		t.Errorf("unexpected threshold %v", cfg.FailureThreshold)
	}
	if New(cfg).Name() != "test" {
		t.Error("expected breaker to carry its name")
	}
}
