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

// TopicRepo implements the TopicRepository interface using SQLite.
type TopicRepo struct {
	conn         db.Conn
	queryBuilder *TopicQueryBuilder
}

// NewTopicRepo creates a new SQLite-backed topic repository.
func NewTopicRepo(conn db.Conn) repository.TopicRepository {
	return &TopicRepo{conn: conn, queryBuilder: NewTopicQueryBuilder()}
}

func (repo *TopicRepo) ListPage(ctx context.Context, filters repository.TopicFilters, offset, limit int) ([]*entity.Topic, int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filters, "")

	var total int64
	if err := repo.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM topics "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListPage: count: %w", err)
	}
	if total == 0 || int64(offset) >= total {
		return []*entity.Topic{}, total, nil
	}

	query := `
SELECT id, name
FROM topics
` + whereClause + `
ORDER BY name ASC, id ASC
LIMIT ? OFFSET ?`
	rows, err := repo.conn.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListPage: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	topics := make([]*entity.Topic, 0, limit)
	for rows.Next() {
		var topic entity.Topic
		if err := rows.Scan(&topic.ID, &topic.Name); err != nil {
			return nil, 0, fmt.Errorf("ListPage: Scan: %w", err)
		}
		topics = append(topics, &topic)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListPage: rows.Err: %w", err)
	}
	return topics, total, nil
}

func (repo *TopicRepo) Get(ctx context.Context, id int64) (*entity.Topic, error) {
	var topic entity.Topic
	err := repo.conn.QueryRowContext(ctx, `SELECT id, name FROM topics WHERE id = ? LIMIT 1`, id).
		Scan(&topic.ID, &topic.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &topic, nil
}

func (repo *TopicRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM topics`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *TopicRepo) Create(ctx context.Context, topic *entity.Topic) error {
	res, err := repo.conn.ExecContext(ctx, `INSERT INTO topics (name) VALUES (?)`, topic.Name)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	topic.ID = id
	return nil
}

func (repo *TopicRepo) Update(ctx context.Context, topic *entity.Topic) error {
	res, err := repo.conn.ExecContext(ctx, `UPDATE topics SET name = ? WHERE id = ?`, topic.Name, topic.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete removes the topic, its newspapers and their publisher links in
// one transaction and reports how many newspapers went with it.
func (repo *TopicRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var cascaded int64
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
DELETE FROM newspaper_publishers
WHERE newspaper_id IN (SELECT id FROM newspapers WHERE topic_id = ?)`, id); err != nil {
			return fmt.Errorf("delete publishers: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM newspapers WHERE topic_id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete newspapers: %w", err)
		}
		cascaded, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete topic: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("Delete: %w", err)
	}
	return cascaded, nil
}
