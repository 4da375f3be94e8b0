package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/infra/db"
	redactorUC "newspaper-agency/internal/usecase/redactor"
)

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the schema, or drop it with --down",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "down", Usage: "Drop every table (deletes all data)"},
			&cli.BoolFlag{Name: "seed", Usage: "Insert the default topics after migrating"},
		},
		Action: r.Migrate,
	}
}

// Migrate applies or drops the schema.
func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	conn, dialect, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cmd.Bool("down") {
		if err := db.MigrateDown(ctx, conn); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		r.logger.Warn("schema dropped", slog.String("dialect", string(dialect)))
		r.printf("schema dropped")
		return nil
	}

	if err := db.MigrateUp(ctx, conn, dialect); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	r.logger.Info("schema up to date", slog.String("dialect", string(dialect)))
	if cmd.Bool("seed") {
		if err := db.Seed(ctx, conn); err != nil {
			return err
		}
		r.logger.Info("default topics seeded")
	}
	r.printf("migrated")
	return nil
}

func createRedactorCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "create-redactor",
		Usage: "Create a staff account, optionally with a role",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Usage: "Login name", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Initial password", Required: true, Sources: cli.EnvVars("AGENCY_PASSWORD")},
			&cli.StringFlag{Name: "role", Usage: "admin or moderator; omit for a plain redactor"},
			&cli.StringFlag{Name: "email", Usage: "Contact address"},
		},
		Action: r.CreateRedactor,
	}
}

// CreateRedactor stores a new account with the role's permissions.
func (r *Runner) CreateRedactor(ctx context.Context, cmd *cli.Command) error {
	perms := entity.NewPermissionSet()
	if name := cmd.String("role"); name != "" {
		role, err := entity.ParseRole(name)
		if err != nil {
			return err
		}
		perms = role.Permissions()
	}

	conn, dialect, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer conn.Close()
	svc, err := r.redactors(conn, dialect)
	if err != nil {
		return err
	}

	password := cmd.String("password")
	created, err := svc.CreateAccount(ctx, redactorUC.RegisterInput{
		Username:        cmd.String("username"),
		Password:        password,
		PasswordConfirm: password,
		Email:           cmd.String("email"),
	}, perms)
	if err != nil {
		return err
	}
	r.printf("created redactor %d (%s) permissions=[%s]",
		created.ID, created.Username, strings.Join(created.Permissions.Strings(), ","))
	return nil
}

func permissionCommand(r *Runner, name, usage string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringSliceFlag{Name: "permission", Aliases: []string{"p"}, Required: true,
				Usage: strings.Join(permissionNames(), ", ")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.ChangePermissions(ctx, cmd, name == "grant")
		},
	}
}

// ChangePermissions grants or revokes the --permission values.
func (r *Runner) ChangePermissions(ctx context.Context, cmd *cli.Command, grant bool) error {
	var perms []entity.Permission
	for _, raw := range cmd.StringSlice("permission") {
		p, err := entity.ParsePermission(raw)
		if err != nil {
			return err
		}
		perms = append(perms, p)
	}

	conn, dialect, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer conn.Close()
	svc, err := r.redactors(conn, dialect)
	if err != nil {
		return err
	}

	username := cmd.String("username")
	change := svc.Revoke
	if grant {
		change = svc.Grant
	}
	set, err := change(ctx, username, perms...)
	if err != nil {
		return fmt.Errorf("%s: %w", username, err)
	}
	r.printf("%s permissions=[%s]", username, strings.Join(set.Strings(), ","))
	return nil
}

func permissionNames() []string {
	all := entity.AllPermissions()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = string(p)
	}
	return names
}
