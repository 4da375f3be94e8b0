package pagination

import (
	"log/slog"
	"time"
)

// LogPage logs one served page with structured fields.
func LogPage(logger *slog.Logger, kind string, params Params, returnedCount int, total int64, duration time.Duration) {
	logger.Debug("paginated listing",
		slog.String("kind", kind),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", returnedCount),
		slog.Int64("total", total),
		slog.Int64("duration_ms", duration.Milliseconds()))
}

// LogError logs a pagination error with structured fields.
func LogError(logger *slog.Logger, kind string, params Params, err error, errorType string) {
	logger.Warn("pagination error",
		slog.String("kind", kind),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.String("error", err.Error()),
		slog.String("error_type", errorType))
}
