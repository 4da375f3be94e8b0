package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/infra/db"
	"newspaper-agency/internal/repository"
)

type NewspaperRepo struct {
	conn         db.Conn
	queryBuilder *NewspaperQueryBuilder
}

func NewNewspaperRepo(conn db.Conn) repository.NewspaperRepository {
	return &NewspaperRepo{
		conn:         conn,
		queryBuilder: NewNewspaperQueryBuilder(),
	}
}

func scanNewspapers(rows *sql.Rows, capacity int) ([]*entity.Newspaper, []int64, error) {
	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	newspapers := make([]*entity.Newspaper, 0, capacity)
	ids := make([]int64, 0, capacity)
	for rows.Next() {
		var n entity.Newspaper
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.PublishedDate, &n.TopicID); err != nil {
			return nil, nil, err
		}
		newspapers = append(newspapers, &n)
		ids = append(ids, n.ID)
	}
	return newspapers, ids, rows.Err()
}

func (repo *NewspaperRepo) attachPublishers(ctx context.Context, newspapers []*entity.Newspaper, ids []int64) error {
	publishers, err := loadPublishers(ctx, repo.conn, ids)
	if err != nil {
		return err
	}
	for _, n := range newspapers {
		n.PublisherIDs = publishers[n.ID]
	}
	return nil
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

	query := fmt.Sprintf(`
SELECT n.id, n.title, n.content, n.published_date, n.topic_id
FROM newspapers n
%s
ORDER BY n.id ASC
LIMIT $%d OFFSET $%d`, whereClause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repo.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListPage: %w", err)
	}
	newspapers, ids, err := scanNewspapers(rows, limit)
	_ = rows.Close()
	if err != nil {
		return nil, 0, fmt.Errorf("ListPage: Scan: %w", err)
	}

	if err := repo.attachPublishers(ctx, newspapers, ids); err != nil {
		return nil, 0, fmt.Errorf("ListPage: publishers: %w", err)
	}
	return newspapers, total, nil
}

func (repo *NewspaperRepo) Get(ctx context.Context, id int64) (*entity.Newspaper, error) {
	const query = `
SELECT id, title, content, published_date, topic_id
FROM newspapers
WHERE id = $1
LIMIT 1`
	var n entity.Newspaper
	err := repo.conn.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.Title, &n.Content, &n.PublishedDate, &n.TopicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	if err := repo.attachPublishers(ctx, []*entity.Newspaper{&n}, []int64{n.ID}); err != nil {
		return nil, fmt.Errorf("Get: publishers: %w", err)
	}
	return &n, nil
}

func (repo *NewspaperRepo) ListByPublisher(ctx context.Context, redactorID int64) ([]*entity.Newspaper, error) {
	const query = `
SELECT n.id, n.title, n.content, n.published_date, n.topic_id
FROM newspapers n
INNER JOIN newspaper_publishers np ON np.newspaper_id = n.id
WHERE np.redactor_id = $1
ORDER BY n.id ASC`
	rows, err := repo.conn.QueryContext(ctx, query, redactorID)
	if err != nil {
		return nil, fmt.Errorf("ListByPublisher: %w", err)
	}
	newspapers, ids, err := scanNewspapers(rows, 16)
	_ = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("ListByPublisher: Scan: %w", err)
	}

	if err := repo.attachPublishers(ctx, newspapers, ids); err != nil {
		return nil, fmt.Errorf("ListByPublisher: publishers: %w", err)
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
			`INSERT INTO newspaper_publishers (newspaper_id, redactor_id) VALUES ($1, $2)`,
			newspaperID, redactorID); err != nil {
			return fmt.Errorf("insert publisher %d: %w", redactorID, err)
		}
	}
	return nil
}

func (repo *NewspaperRepo) Create(ctx context.Context, n *entity.Newspaper) error {
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		const query = `
INSERT INTO newspapers (title, content, published_date, topic_id)
VALUES ($1, $2, $3, $4)
RETURNING id`
		if err := tx.QueryRowContext(ctx, query, n.Title, n.Content, n.PublishedDate, n.TopicID).Scan(&n.ID); err != nil {
			return err
		}
		return insertPublishers(ctx, tx, n.ID, n.PublisherIDs)
	})
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update never writes published_date.
func (repo *NewspaperRepo) Update(ctx context.Context, n *entity.Newspaper) error {
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		const query = `
UPDATE newspapers SET
       title    = $1,
       content  = $2,
       topic_id = $3
WHERE id = $4`
		res, err := tx.ExecContext(ctx, query, n.Title, n.Content, n.TopicID, n.ID)
		if err != nil {
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return entity.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM newspaper_publishers WHERE newspaper_id = $1`, n.ID); err != nil {
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
		if _, err := tx.ExecContext(ctx, `DELETE FROM newspaper_publishers WHERE newspaper_id = $1`, id); err != nil {
			return fmt.Errorf("delete publishers: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM newspapers WHERE id = $1`, id)
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
