// Package circuitbreaker stops sending work to a database that keeps
// failing. State changes are logged and published as a gauge.
package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sony/gobreaker"

	"newspaper-agency/internal/observability/metrics"
)

// Config describes when a breaker opens and how it probes for recovery.
type Config struct {
	Name string

	MaxRequests uint32        // probes let through while half-open
	Interval    time.Duration // closed-state window after which counts reset
	Timeout     time.Duration // time spent open before probing

	// The breaker opens once at least MinRequests calls were seen in the
	// window and the share of failures reaches FailureThreshold.
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultConfig is a moderately tolerant breaker named name.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          time.Minute,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func (c Config) shouldTrip(counts gobreaker.Counts) bool {
	if counts.Requests < c.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= c.FailureThreshold
}

// CircuitBreaker is a named gobreaker instance.
type CircuitBreaker struct {
	name string
	gb   *gobreaker.CircuitBreaker
}

// New builds a closed breaker and publishes its initial state.
func New(cfg Config) *CircuitBreaker {
	gb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:          cfg.Name,
		MaxRequests:   cfg.MaxRequests,
		Interval:      cfg.Interval,
		Timeout:       cfg.Timeout,
		ReadyToTrip:   cfg.shouldTrip,
		IsSuccessful:  healthyOutcome,
		OnStateChange: onStateChange,
	})
	metrics.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{name: cfg.Name, gb: gb}
}

func onStateChange(name string, from, to gobreaker.State) {
	slog.Warn("circuit breaker state changed",
		slog.String("circuit", name),
		slog.String("from", from.String()),
		slog.String("to", to.String()))
	metrics.SetCircuitBreakerState(name, int(to))
}

// healthyOutcome reports whether err leaves the database's health
// unquestioned. Missing rows, abandoned requests and constraint violations
// such as a duplicate username are the caller's problem.
func healthyOutcome(err error) bool {
	if err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23") // integrity_constraint_violation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

// Execute runs fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState without calling fn.
func (b *CircuitBreaker) Execute(fn func() (any, error)) (any, error) {
	return b.gb.Execute(fn)
}

func (b *CircuitBreaker) State() gobreaker.State { return b.gb.State() }

func (b *CircuitBreaker) Name() string { return b.name }

func (b *CircuitBreaker) IsOpen() bool { return b.gb.State() == gobreaker.StateOpen }

// guard runs fn through b and keeps the result's static type.
func guard[T any](b *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := b.gb.Execute(func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}
