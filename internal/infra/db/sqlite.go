package db

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDriver is go-sqlite3 with a ulower(text) function registered on
// every connection. SQLite's own LOWER and LIKE fold ASCII letters only.
const SQLiteDriver = "sqlite3_agency"

func init() {
	sql.Register(SQLiteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("ulower", strings.ToLower, true)
		},
	})
}
