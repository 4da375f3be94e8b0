package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "newspaper-agency"

// GetTracer returns the application tracer from the global provider.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartOperation starts a span for a lifecycle operation such as
// ("newspaper", "update").
func StartOperation(ctx context.Context, kind, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("agency.kind", kind),
		attribute.String("agency.op", op),
	)
	return GetTracer().Start(ctx, kind+"."+op, trace.WithAttributes(attrs...))
}

// EndOperation records err and outcome on span and ends it.
func EndOperation(span trace.Span, outcome string, err error) {
	span.SetAttributes(attribute.String("agency.outcome", outcome))
	if err != nil && outcome != "ok" {
		span.RecordError(err)
		if outcome == "store" || outcome == "error" {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
