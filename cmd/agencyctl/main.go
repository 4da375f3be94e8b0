// Command agencyctl administers the agency database: schema migrations,
// staff accounts and permission changes.
package main

import (
	"context"
	"log/slog"
	"os"

	"newspaper-agency/internal/observability/logging"
)

func main() {
	logger := logging.NewConsoleLogger(os.Stderr, logging.LevelFromEnv())
	runner := NewRunner(RunnerOpts{Logger: logger, Output: os.Stdout})

	if err := runner.App().Run(context.Background(), os.Args); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
