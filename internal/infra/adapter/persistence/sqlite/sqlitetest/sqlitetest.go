// Package sqlitetest opens migrated throwaway SQLite databases for tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"newspaper-agency/internal/infra/db"
)

// Open creates a migrated database file under t.TempDir with foreign keys
// enabled. It is closed when the test ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	conn, err := sql.Open(db.SQLiteDriver, filepath.Join(t.TempDir(), "agency.db")+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.MigrateUp(context.Background(), conn, db.SQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}
