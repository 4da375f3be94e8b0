package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func idArgs(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// loadPublishers returns the publisher IDs of each newspaper in ids.
func loadPublishers(ctx context.Context, q queryer, ids []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `
SELECT newspaper_id, redactor_id
FROM newspaper_publishers
WHERE newspaper_id IN (` + placeholders(len(ids)) + `)
ORDER BY newspaper_id ASC, redactor_id ASC`
	rows, err := q.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var newspaperID, redactorID int64
		if err := rows.Scan(&newspaperID, &redactorID); err != nil {
			return nil, err
		}
		result[newspaperID] = append(result[newspaperID], redactorID)
	}
	return result, rows.Err()
}
