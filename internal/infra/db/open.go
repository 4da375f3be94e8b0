package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/xo/dburl"

	pkgconfig "newspaper-agency/pkg/config"
)

// Dialect selects the SQL flavour of a database.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect    Dialect
	DriverName string
	DSN        string
	Redacted   string
}

// ParseURL resolves a dburl-style URL (postgres://..., sqlite3:path) into the
// driver and DSN used by database/sql.
func ParseURL(raw string) (*Target, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("database url is empty")
	}
	u, err := dburl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	switch u.Driver {
	case "postgres":
		return &Target{Dialect: Postgres, DriverName: "pgx", DSN: u.DSN, Redacted: redact(u)}, nil
	case "sqlite3":
		dsn := u.DSN
		// foreign keys are off by default in SQLite; cascades depend on them
		if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_foreign_keys=on"
		}
		return &Target{Dialect: SQLite, DriverName: SQLiteDriver, DSN: dsn, Redacted: redact(u)}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
	}
}

func redact(u *dburl.URL) string {
	if u.User == nil {
		return u.String()
	}
	c := u.URL
	c.User = nil
	return c.String()
}

// Open creates and configures a new database connection pool and verifies
// it with a ping.
func Open(ctx context.Context, rawURL string, cfg ConnectionConfig) (*sql.DB, Dialect, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(target.DriverName, target.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}

	if target.Dialect == SQLite {
		// a single writer avoids "database is locked" and keeps :memory: databases shared
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("dialect", string(target.Dialect)),
		slog.String("url", target.Redacted),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connection established successfully")
	return db, target.Dialect, nil
}

// ConnectionConfigFromEnv reads DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS,
// DB_CONN_MAX_LIFETIME and DB_CONN_MAX_IDLE_TIME over the defaults.
// Non-positive values are ignored.
func ConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()
	if v := pkgconfig.GetEnvInt("DB_MAX_OPEN_CONNS", 0); v > 0 {
		cfg.MaxOpenConns = v
	}
	if v := pkgconfig.GetEnvInt("DB_MAX_IDLE_CONNS", 0); v > 0 {
		cfg.MaxIdleConns = v
	}
	if v := pkgconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", 0); v > 0 {
		cfg.ConnMaxLifetime = v
	}
	if v := pkgconfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", 0); v > 0 {
		cfg.ConnMaxIdleTime = v
	}
	return cfg
}
