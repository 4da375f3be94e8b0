package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sony/gobreaker"

	"newspaper-agency/internal/observability/metrics"
)

// DB wraps a connection pool with circuit breaker protection. It satisfies
// the repositories' connection interface, so every query, statement and
// transaction start goes through the breaker.
type DB struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig opens the database breaker only when every one of at least five
// calls in a minute failed, and probes again after 30 seconds.
func DBConfig() Config {
	cfg := DefaultConfig("database")
	cfg.Interval = time.Minute
	cfg.Timeout = 30 * time.Second
	cfg.FailureThreshold = 1.0
	return cfg
}

// WrapDB wraps db with a breaker built from cfg.
func WrapDB(db *sql.DB, cfg Config) *DB {
	return &DB{cb: New(cfg), db: db}
}

// QueryContext executes a query with circuit breaker protection.
// If the circuit is open, it returns gobreaker.ErrOpenState without hitting the database.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer observeQuery("query", time.Now())
	return guard(d.cb, func() (*sql.Rows, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
}

// ExecContext executes a statement with circuit breaker protection.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer observeQuery("exec", time.Now())
	return guard(d.cb, func() (sql.Result, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext executes a query that returns at most one row.
// sql.Row defers its error until Scan, so the breaker only refuses the call
// while open; failures of the query itself are not counted.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if d.cb.IsOpen() {
		// a cancelled context makes the returned row fail on Scan
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		return d.db.QueryRowContext(cctx, query, args...)
	}
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction with circuit breaker protection. Statements
// inside the transaction run on the returned *sql.Tx directly.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return guard(d.cb, func() (*sql.Tx, error) {
		return d.db.BeginTx(ctx, opts)
	})
}

// PingContext checks the database through the breaker.
func (d *DB) PingContext(ctx context.Context) error {
	_, err := guard(d.cb, func() (struct{}, error) {
		return struct{}{}, d.db.PingContext(ctx)
	})
	return err
}

// State returns the current state of the circuit breaker.
func (d *DB) State() gobreaker.State {
	return d.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (d *DB) IsOpen() bool {
	return d.cb.IsOpen()
}

func observeQuery(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}

// Unwrap returns the underlying connection pool for operations that must
// bypass the breaker, such as migrations and pool statistics.
func (d *DB) Unwrap() *sql.DB {
	return d.db
}
