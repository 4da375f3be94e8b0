package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"newspaper-agency/internal/infra/adapter/persistence"
	"newspaper-agency/internal/infra/db"
	"newspaper-agency/internal/observability/logging"
	"newspaper-agency/internal/resilience/retry"
	authservice "newspaper-agency/internal/service/auth"
	redactorUC "newspaper-agency/internal/usecase/redactor"
)

// Runner holds the dependencies shared by every command.
type Runner struct {
	logger *slog.Logger
	output io.Writer
	hasher authservice.Hasher
}

// RunnerOpts configures NewRunner. Nil fields get defaults.
type RunnerOpts struct {
	Logger *slog.Logger
	Output io.Writer
	Hasher authservice.Hasher
}

// NewRunner creates a Runner.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = logging.NewConsoleLogger(os.Stderr, slog.LevelInfo)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Hasher == nil {
		opts.Hasher = authservice.NewBcryptHasher()
	}
	return &Runner{logger: opts.Logger, output: opts.Output, hasher: opts.Hasher}
}

// App returns the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:   "agencyctl",
		Usage:  "Administer the newspaper agency database",
		Writer: r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Usage:   "Database URL (postgres://... or sqlite:path)",
				Value:   "sqlite:agency.db",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
		},
		Commands: []*cli.Command{
			migrateCommand(r),
			createRedactorCommand(r),
			permissionCommand(r, "grant", "Grant a permission to a redactor"),
			permissionCommand(r, "revoke", "Revoke a permission from a redactor"),
		},
	}
}

// connect opens the database named by --database-url.
func (r *Runner) connect(ctx context.Context, cmd *cli.Command) (*sql.DB, db.Dialect, error) {
	var (
		conn    *sql.DB
		dialect db.Dialect
	)
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		c, d, err := db.Open(ctx, cmd.String("database-url"), db.ConnectionConfigFromEnv())
		if err != nil {
			return err
		}
		conn, dialect = c, d
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("connect database: %w", err)
	}
	return conn, dialect, nil
}

// redactors builds the account service over conn.
func (r *Runner) redactors(conn *sql.DB, dialect db.Dialect) (*redactorUC.Service, error) {
	repos, err := persistence.New(conn, dialect)
	if err != nil {
		return nil, err
	}
	return &redactorUC.Service{
		Repo:       repos.Redactors,
		Newspapers: repos.Newspapers,
		Hasher:     r.hasher,
	}, nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.output, format+"\n", args...)
}
