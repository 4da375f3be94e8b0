package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed seeds/topics.sql
var seedTopicsSQL string

// Execer runs schema statements. *sql.DB satisfies it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS topics (
    id   BIGSERIAL PRIMARY KEY,
    name VARCHAR(55) NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS redactors (
    id                  BIGSERIAL PRIMARY KEY,
    username            VARCHAR(150) NOT NULL UNIQUE,
    password_hash       TEXT NOT NULL,
    first_name          VARCHAR(150) NOT NULL DEFAULT '',
    last_name           VARCHAR(150) NOT NULL DEFAULT '',
    email               VARCHAR(254) NOT NULL DEFAULT '',
    years_of_experience INTEGER CHECK (years_of_experience >= 0),
    is_active           BOOLEAN NOT NULL DEFAULT TRUE,
    date_joined         TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS newspapers (
    id             BIGSERIAL PRIMARY KEY,
    title          VARCHAR(255) NOT NULL,
    content        TEXT NOT NULL,
    published_date DATE NOT NULL,
    topic_id       BIGINT NOT NULL REFERENCES topics(id) ON DELETE CASCADE
)`,
	`
CREATE TABLE IF NOT EXISTS newspaper_publishers (
    newspaper_id BIGINT NOT NULL REFERENCES newspapers(id) ON DELETE CASCADE,
    redactor_id  BIGINT NOT NULL REFERENCES redactors(id) ON DELETE CASCADE,
    PRIMARY KEY (newspaper_id, redactor_id)
)`,
	`
CREATE TABLE IF NOT EXISTS redactor_permissions (
    redactor_id BIGINT NOT NULL REFERENCES redactors(id) ON DELETE CASCADE,
    permission  VARCHAR(64) NOT NULL,
    PRIMARY KEY (redactor_id, permission)
)`,
	`CREATE INDEX IF NOT EXISTS idx_newspapers_topic_id ON newspapers(topic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_newspaper_publishers_redactor_id ON newspaper_publishers(redactor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_topics_name ON topics(name)`,
}

// ILIKE検索用GINインデックス(pg_trgm拡張がない場合はエラーを無視)
var postgresOptional = []string{
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
	`CREATE INDEX IF NOT EXISTS idx_newspapers_title_gin ON newspapers USING gin(title gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_newspapers_content_gin ON newspapers USING gin(content gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_redactors_username_gin ON redactors USING gin(username gin_trgm_ops)`,
}

var sqliteSchema = []string{
	`
CREATE TABLE IF NOT EXISTS topics (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(55) NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS redactors (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    username            VARCHAR(150) NOT NULL UNIQUE,
    password_hash       TEXT NOT NULL,
    first_name          VARCHAR(150) NOT NULL DEFAULT '',
    last_name           VARCHAR(150) NOT NULL DEFAULT '',
    email               VARCHAR(254) NOT NULL DEFAULT '',
    years_of_experience INTEGER CHECK (years_of_experience >= 0),
    is_active           BOOLEAN NOT NULL DEFAULT 1,
    date_joined         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`
CREATE TABLE IF NOT EXISTS newspapers (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    title          VARCHAR(255) NOT NULL,
    content        TEXT NOT NULL,
    published_date DATE NOT NULL,
    topic_id       INTEGER NOT NULL REFERENCES topics(id) ON DELETE CASCADE
)`,
	`
CREATE TABLE IF NOT EXISTS newspaper_publishers (
    newspaper_id INTEGER NOT NULL REFERENCES newspapers(id) ON DELETE CASCADE,
    redactor_id  INTEGER NOT NULL REFERENCES redactors(id) ON DELETE CASCADE,
    PRIMARY KEY (newspaper_id, redactor_id)
)`,
	`
CREATE TABLE IF NOT EXISTS redactor_permissions (
    redactor_id INTEGER NOT NULL REFERENCES redactors(id) ON DELETE CASCADE,
    permission  VARCHAR(64) NOT NULL,
    PRIMARY KEY (redactor_id, permission)
)`,
	`CREATE INDEX IF NOT EXISTS idx_newspapers_topic_id ON newspapers(topic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_newspaper_publishers_redactor_id ON newspaper_publishers(redactor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_topics_name ON topics(name)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS redactor_permissions`,
	`DROP TABLE IF EXISTS newspaper_publishers`,
	`DROP TABLE IF EXISTS newspapers`,
	`DROP TABLE IF EXISTS redactors`,
	`DROP TABLE IF EXISTS topics`,
}

// MigrateUp creates the schema for the given dialect. It is idempotent.
func MigrateUp(ctx context.Context, db Execer, dialect Dialect) error {
	var stmts []string
	switch dialect {
	case Postgres:
		stmts = postgresSchema
	case SQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("migrate: unsupported dialect %q", dialect)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if dialect == Postgres {
		for _, stmt := range postgresOptional {
			_, _ = db.ExecContext(ctx, stmt)
		}
	}
	return nil
}

// MigrateDown drops every table in reverse dependency order.
// Use with caution: this will delete all data.
func MigrateDown(ctx context.Context, db Execer) error {
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts the default topics when the topics table is empty.
func Seed(ctx context.Context, db Execer) error {
	if _, err := db.ExecContext(ctx, seedTopicsSQL); err != nil {
		return fmt.Errorf("seed topics: %w", err)
	}
	return nil
}
