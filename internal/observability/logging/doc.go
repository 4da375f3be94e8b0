// Package logging builds the slog loggers used by the server and the admin
// CLI and carries a request-scoped logger through the context.
//
//	logger := logging.NewLogger()
//	ctx = logging.WithLogger(ctx, logging.WithRequestID(ctx, logger))
//	logging.FromContext(ctx).Info("processing request")
package logging
