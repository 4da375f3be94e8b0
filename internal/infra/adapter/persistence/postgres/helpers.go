package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// queryer is satisfied by both the pooled connection and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// placeholders returns "$start, $start+1, ..." for n parameters.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func idArgs(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
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
WHERE newspaper_id IN (` + placeholders(1, len(ids)) + `)
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
