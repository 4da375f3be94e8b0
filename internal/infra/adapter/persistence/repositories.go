// Package persistence selects the repository implementations for a
// database dialect.
package persistence

import (
	"fmt"

	"newspaper-agency/internal/infra/adapter/persistence/postgres"
	"newspaper-agency/internal/infra/adapter/persistence/sqlite"
	"newspaper-agency/internal/infra/db"
	"newspaper-agency/internal/repository"
)

// Repositories groups the three entity stores over one connection.
type Repositories struct {
	Topics     repository.TopicRepository
	Newspapers repository.NewspaperRepository
	Redactors  repository.RedactorRepository
}

// New returns the repositories for dialect.
func New(conn db.Conn, dialect db.Dialect) (*Repositories, error) {
	switch dialect {
	case db.Postgres:
		return &Repositories{
			Topics:     postgres.NewTopicRepo(conn),
			Newspapers: postgres.NewNewspaperRepo(conn),
			Redactors:  postgres.NewRedactorRepo(conn),
		}, nil
	case db.SQLite:
		return &Repositories{
			Topics:     sqlite.NewTopicRepo(conn),
			Newspapers: sqlite.NewNewspaperRepo(conn),
			Redactors:  sqlite.NewRedactorRepo(conn),
		}, nil
	default:
		return nil, fmt.Errorf("no repositories for dialect %q", dialect)
	}
}
