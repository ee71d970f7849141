// Package rftrace configures the OpenTelemetry tracer the server uses to
// emit one span per connection, covering the whole upload or crack
// exchange; the upload and crack phases get no child spans of their own.
// It exports to stdout only; there is no OTLP collector in this system.
package rftrace

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Provider wraps the SDK tracer provider so callers can shut it down
// cleanly on exit.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// New builds a tracer provider that writes spans as pretty-printed JSON
// to w. Passing io.Discard disables visible output while keeping
// instrumentation live (useful for tests).
func New(w io.Writer) (*Provider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("rainbowforge"),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp}, nil
}

// Tracer returns the named tracer, as the server and CLI commands use to
// start spans.
func (p *Provider) Tracer(name string) trace.Tracer {
	return p.tp.Tracer(name)
}

// Shutdown flushes pending spans and releases the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
