// Package tracing provides OpenTelemetry tracing integration: an HTTP server
// middleware and span helpers for lifecycle operations. Spans are exported
// through whatever TracerProvider is installed globally.
package tracing
