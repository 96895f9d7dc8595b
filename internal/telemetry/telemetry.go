// Package telemetry sets up OpenTelemetry tracing for one CLI invocation.
// Without an OTLP endpoint every span goes to a no-op tracer.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope used by every dadjoke span.
const TracerName = "github.com/flemzord/dadjoke"

// shutdownTimeout bounds the final span export so a dead collector
// cannot hang the command on exit.
const shutdownTimeout = 5 * time.Second

// Config selects the exporter.
type Config struct {
	// OTLPEndpoint is a full OTLP/HTTP traces URL
	// (e.g. "http://localhost:4318/v1/traces"). Empty disables export.
	OTLPEndpoint string

	ServiceName    string
	ServiceVersion string
}

// Provider owns the tracer provider for the lifetime of a command.
type Provider struct {
	tp       trace.TracerProvider
	shutdown func(context.Context) error
}

// Setup builds a Provider. The exporter is created lazily by the SDK, so
// an unreachable collector only surfaces as a Shutdown error.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.OTLPEndpoint == "" {
		return &Provider{
			tp:       noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating OTLP exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	return &Provider{tp: tp, shutdown: tp.Shutdown}, nil
}

// NewWithTracerProvider wraps an existing provider (tests use an SDK
// provider with a span recorder).
func NewWithTracerProvider(tp trace.TracerProvider) *Provider {
	p := &Provider{tp: tp, shutdown: func(context.Context) error { return nil }}
	if sdk, ok := tp.(*sdktrace.TracerProvider); ok {
		p.shutdown = sdk.Shutdown
	}
	return p
}

// Tracer returns the dadjoke tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.tp.Tracer(TracerName)
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := p.shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutdown: %w", err)
	}
	return nil
}
