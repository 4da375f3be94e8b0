// Package observe wraps lifecycle operations with a span, a metric and a
// log line so each controller method stays focused on its own rules.
package observe

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/observability/logging"
	"newspaper-agency/internal/observability/metrics"
	"newspaper-agency/internal/observability/tracing"
)

// Op is one running lifecycle operation.
type Op struct {
	ctx   context.Context
	kind  string
	name  string
	start time.Time
	span  trace.Span
}

// Start opens the span for kind.name and returns the derived context.
func Start(ctx context.Context, kind, name string, attrs ...attribute.KeyValue) (context.Context, *Op) {
	ctx, span := tracing.StartOperation(ctx, kind, name, attrs...)
	return ctx, &Op{ctx: ctx, kind: kind, name: name, start: time.Now(), span: span}
}

// Span returns the operation span.
func (o *Op) Span() trace.Span { return o.span }

// End classifies err, records it and returns it unchanged.
func (o *Op) End(err error) error {
	outcome := entity.Outcome(err)
	duration := time.Since(o.start)
	metrics.RecordLifecycleOperation(o.kind, o.name, outcome, duration)
	tracing.EndOperation(o.span, outcome, err)

	logger := logging.FromContext(o.ctx)
	attrs := []any{
		slog.String("kind", o.kind),
		slog.String("op", o.name),
		slog.String("outcome", outcome),
		slog.Int64("duration_ms", duration.Milliseconds()),
	}
	switch outcome {
	case "ok":
		logger.Debug("lifecycle operation", attrs...)
	case "store", "error":
		logger.Error("lifecycle operation failed", append(attrs, slog.Any("error", err))...)
	default:
		logger.Info("lifecycle operation rejected", append(attrs, slog.String("reason", err.Error()))...)
	}
	return err
}
