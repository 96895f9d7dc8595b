package telemetry

import (
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	t.Parallel()

	p, err := Setup(t.Context(), Config{ServiceName: "dadjoke"})
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	_, span := p.Tracer().Start(t.Context(), "noop")
	if span.SpanContext().IsValid() {
		t.Error("no-op tracer should produce an invalid span context")
	}
	span.End()

	if err := p.Shutdown(t.Context()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
}

func TestSetupWithEndpoint(t *testing.T) {
	t.Parallel()

	p, err := Setup(t.Context(), Config{
		OTLPEndpoint:   "http://127.0.0.1:4318/v1/traces",
		ServiceName:    "dadjoke",
		ServiceVersion: "test",
	})
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	_, span := p.Tracer().Start(t.Context(), "exported")
	if !span.SpanContext().IsValid() {
		t.Error("SDK tracer should produce a valid span context")
	}
	span.End()
}

func TestNewWithTracerProviderRecordsSpans(t *testing.T) {
	t.Parallel()

	rec := tracetest.NewSpanRecorder()
	p := NewWithTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	_, span := p.Tracer().Start(t.Context(), "search-term")
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	if ended[0].Name() != "search-term" {
		t.Errorf("span name = %q", ended[0].Name())
	}
	if err := p.Shutdown(t.Context()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
}
