package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/infra/db"
	"newspaper-agency/internal/repository"
)

// NewspaperRepo implements the NewspaperRepository interface using SQLite.
type NewspaperRepo struct {
	conn         db.Conn
	queryBuilder *NewspaperQueryBuilder
}

// NewNewspaperRepo creates a new SQLite-backed newspaper repository.
func NewNewspaperRepo(conn db.Conn) repository.NewspaperRepository {
	return &NewspaperRepo{conn: conn, queryBuilder: NewNewspaperQueryBuilder()}
}

const newspaperColumns = `n.id, n.title, n.content, n.published_date, n.topic_id`

// collect scans rows, closes them and then loads publishers. The pool holds
// a single connection, so rows must be closed before the second query.
func (repo *NewspaperRepo) collect(ctx context.Context, rows *sql.Rows, capacity int) ([]*entity.Newspaper, error) {
	newspapers := make([]*entity.Newspaper, 0, capacity)
	ids := make([]int64, 0, capacity)
	for rows.Next() {
		var n entity.Newspaper
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.PublishedDate, &n.TopicID); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("Scan: %w", err)
		}
		n.PublishedDate = entity.DateOf(n.PublishedDate)
		newspapers = append(newspapers, &n)
		ids = append(ids, n.ID)
	}
	err := rows.Err()
	_ = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	publishers, err := loadPublishers(ctx, repo.conn, ids)
	if err != nil {
		return nil, fmt.Errorf("publishers: %w", err)
	}
	for _, n := range newspapers {
		n.PublisherIDs = publishers[n.ID]
	}
	return newspapers, nil
}

func (repo *NewspaperRepo) ListPage(ctx context.Context, filters repository.NewspaperFilters, offset, limit int) ([]*entity.Newspaper, int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filters, "n")

	var total int64
	if err := repo.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM newspapers n "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListPage: count: %w", err)
	}
	if total == 0 || int64(offset) >= total {
		return []*entity.Newspaper{}, total, nil
	}

	query := `
SELECT ` + newspaperColumns + `
FROM newspapers n
` + whereClause + `
ORDER BY n.id ASC
LIMIT ? OFFSET ?`
	rows, err := repo.conn.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListPage: QueryContext: %w", err)
	}
	newspapers, err := repo.collect(ctx, rows, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("ListPage: %w", err)
	}
	return newspapers, total, nil
}

func (repo *NewspaperRepo) Get(ctx context.Context, id int64) (*entity.Newspaper, error) {
	rows, err := repo.conn.QueryContext(ctx,
		`SELECT `+newspaperColumns+` FROM newspapers n WHERE n.id = ? LIMIT 1`, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	newspapers, err := repo.collect(ctx, rows, 1)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if len(newspapers) == 0 {
		return nil, nil
	}
	return newspapers[0], nil
}

func (repo *NewspaperRepo) ListByPublisher(ctx context.Context, redactorID int64) ([]*entity.Newspaper, error) {
	rows, err := repo.conn.QueryContext(ctx, `
SELECT `+newspaperColumns+`
FROM newspapers n
INNER JOIN newspaper_publishers np ON np.newspaper_id = n.id
WHERE np.redactor_id = ?
ORDER BY n.id ASC`, redactorID)
	if err != nil {
		return nil, fmt.Errorf("ListByPublisher: %w", err)
	}
	newspapers, err := repo.collect(ctx, rows, 16)
	if err != nil {
		return nil, fmt.Errorf("ListByPublisher: %w", err)
	}
	return newspapers, nil
}

func (repo *NewspaperRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM newspapers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func insertPublishers(ctx context.Context, tx *sql.Tx, newspaperID int64, publisherIDs []int64) error {
	for _, redactorID := range publisherIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO newspaper_publishers (newspaper_id, redactor_id) VALUES (?, ?)`,
			newspaperID, redactorID); err != nil {
			return fmt.Errorf("insert publisher %d: %w", redactorID, err)
		}
	}
	return nil
}

func (repo *NewspaperRepo) Create(ctx context.Context, n *entity.Newspaper) error {
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO newspapers (title, content, published_date, topic_id) VALUES (?, ?, ?, ?)`,
			n.Title, n.Content, entity.DateOf(n.PublishedDate), n.TopicID)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := insertPublishers(ctx, tx, id, n.PublisherIDs); err != nil {
			return err
		}
		n.ID = id
		return nil
	})
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update never writes published_date.
func (repo *NewspaperRepo) Update(ctx context.Context, n *entity.Newspaper) error {
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE newspapers SET title = ?, content = ?, topic_id = ? WHERE id = ?`,
			n.Title, n.Content, n.TopicID, n.ID)
		if err != nil {
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return entity.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM newspaper_publishers WHERE newspaper_id = ?`, n.ID); err != nil {
			return fmt.Errorf("clear publishers: %w", err)
		}
		return insertPublishers(ctx, tx, n.ID, n.PublisherIDs)
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *NewspaperRepo) Delete(ctx context.Context, id int64) error {
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM newspaper_publishers WHERE newspaper_id = ?`, id); err != nil {
			return fmt.Errorf("delete publishers: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM newspapers WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
