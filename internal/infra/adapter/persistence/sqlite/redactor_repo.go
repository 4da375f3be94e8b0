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

// RedactorRepo implements the RedactorRepository interface using SQLite.
type RedactorRepo struct {
	conn         db.Conn
	queryBuilder *RedactorQueryBuilder
}

// NewRedactorRepo creates a new SQLite-backed redactor repository.
func NewRedactorRepo(conn db.Conn) repository.RedactorRepository {
	return &RedactorRepo{conn: conn, queryBuilder: NewRedactorQueryBuilder()}
}

const redactorColumns = `id, username, password_hash, first_name, last_name, email,
       years_of_experience, is_active, date_joined`

func scanRedactors(rows *sql.Rows) ([]*entity.Redactor, error) {
	var redactors []*entity.Redactor
	for rows.Next() {
		var r entity.Redactor
		var years sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Username, &r.PasswordHash, &r.FirstName, &r.LastName, &r.Email,
			&years, &r.IsActive, &r.DateJoined); err != nil {
			return nil, err
		}
		if years.Valid {
			y := int(years.Int64)
			r.YearsOfExperience = &y
		}
		redactors = append(redactors, &r)
	}
	return redactors, rows.Err()
}

func nullableYears(years *int) interface{} {
	if years == nil {
		return nil
	}
	return int64(*years)
}

func usernameTaken() error {
	return entity.NewValidationErrors("username", "a redactor with that username already exists")
}

func (repo *RedactorRepo) ListPage(ctx context.Context, filters repository.RedactorFilters, offset, limit int) ([]*entity.Redactor, int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filters, "")

	var total int64
	if err := repo.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM redactors "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListPage: count: %w", err)
	}
	if total == 0 || int64(offset) >= total {
		return []*entity.Redactor{}, total, nil
	}

	query := `
SELECT ` + redactorColumns + `
FROM redactors
` + whereClause + `
ORDER BY username ASC, id ASC
LIMIT ? OFFSET ?`
	rows, err := repo.conn.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListPage: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	redactors, err := scanRedactors(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("ListPage: Scan: %w", err)
	}
	return redactors, total, nil
}

func (repo *RedactorRepo) loadPermissions(ctx context.Context, r *entity.Redactor) error {
	rows, err := repo.conn.QueryContext(ctx,
		`SELECT permission FROM redactor_permissions WHERE redactor_id = ? ORDER BY permission ASC`, r.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	var perms []entity.Permission
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if p, err := entity.ParsePermission(name); err == nil {
			perms = append(perms, p)
		}
	}
	r.Permissions = entity.NewPermissionSet(perms...)
	return rows.Err()
}

func (repo *RedactorRepo) getBy(ctx context.Context, op, column string, value interface{}) (*entity.Redactor, error) {
	rows, err := repo.conn.QueryContext(ctx,
		`SELECT `+redactorColumns+` FROM redactors WHERE `+column+` = ? LIMIT 1`, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	found, err := scanRedactors(rows)
	_ = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: Scan: %w", op, err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	if err := repo.loadPermissions(ctx, found[0]); err != nil {
		return nil, fmt.Errorf("%s: permissions: %w", op, err)
	}
	return found[0], nil
}

func (repo *RedactorRepo) Get(ctx context.Context, id int64) (*entity.Redactor, error) {
	return repo.getBy(ctx, "Get", "id", id)
}

func (repo *RedactorRepo) GetByUsername(ctx context.Context, username string) (*entity.Redactor, error) {
	return repo.getBy(ctx, "GetByUsername", "username", username)
}

func (repo *RedactorRepo) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	var exists bool
	err := repo.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM redactors WHERE username = ? AND id <> ?)`, username, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ExistsByUsername: %w", err)
	}
	return exists, nil
}

func (repo *RedactorRepo) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := repo.conn.QueryContext(ctx,
		`SELECT id FROM redactors WHERE id IN (`+placeholders(len(ids))+`)`, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("MissingIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	found := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("MissingIDs: Scan: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MissingIDs: %w", err)
	}

	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (repo *RedactorRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM redactors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func replacePermissions(ctx context.Context, tx *sql.Tx, redactorID int64, perms entity.PermissionSet) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM redactor_permissions WHERE redactor_id = ?`, redactorID); err != nil {
		return fmt.Errorf("clear permissions: %w", err)
	}
	for _, p := range perms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO redactor_permissions (redactor_id, permission) VALUES (?, ?)`,
			redactorID, string(p)); err != nil {
			return fmt.Errorf("grant %s: %w", p, err)
		}
	}
	return nil
}

func (repo *RedactorRepo) Create(ctx context.Context, r *entity.Redactor) error {
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO redactors (username, password_hash, first_name, last_name, email,
                       years_of_experience, is_active, date_joined)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Username, r.PasswordHash, r.FirstName, r.LastName, r.Email,
			nullableYears(r.YearsOfExperience), r.IsActive, r.DateJoined.UTC())
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := replacePermissions(ctx, tx, id, r.Permissions); err != nil {
			return err
		}
		r.ID = id
		return nil
	})
	if isUniqueViolation(err) {
		return usernameTaken()
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *RedactorRepo) Update(ctx context.Context, r *entity.Redactor) error {
	res, err := repo.conn.ExecContext(ctx, `
UPDATE redactors SET
       username = ?, password_hash = ?, first_name = ?, last_name = ?,
       email = ?, years_of_experience = ?, is_active = ?
WHERE id = ?`,
		r.Username, r.PasswordHash, r.FirstName, r.LastName, r.Email,
		nullableYears(r.YearsOfExperience), r.IsActive, r.ID)
	if isUniqueViolation(err) {
		return usernameTaken()
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *RedactorRepo) SetPermissions(ctx context.Context, id int64, perms entity.PermissionSet) error {
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM redactors WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return entity.ErrNotFound
		}
		return replacePermissions(ctx, tx, id, perms)
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		return fmt.Errorf("SetPermissions: %w", err)
	}
	return nil
}

// Delete detaches the redactor from its newspapers and removes the account.
func (repo *RedactorRepo) Delete(ctx context.Context, id int64) error {
	err := db.WithTx(ctx, repo.conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM newspaper_publishers WHERE redactor_id = ?`, id); err != nil {
			return fmt.Errorf("detach publisher: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM redactor_permissions WHERE redactor_id = ?`, id); err != nil {
			return fmt.Errorf("delete permissions: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM redactors WHERE id = ?`, id)
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
