package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestAllows(t *testing.T) {
	handlers := New("test").OnlyPrefix("httpapi.Handler.")
	tests := []struct {
		tracer Tracer
		name   string
		want   bool
	}{
		{tracer: handlers, name: "httpapi.Handler.ListMarkers", want: true},
		{tracer: handlers, name: "httpapi.RequestLogging", want: false},
		{tracer: handlers, name: "httpapi.writeError", want: false},
		{tracer: New("test"), name: "usecase.MapService.Load", want: true},
		{tracer: New("test"), name: "  ", want: false},
	}
	for _, tt := range tests {
		if got := tt.tracer.Allows(tt.name); got != tt.want {
			t.Fatalf("Allows(%q)=%v want %v", tt.name, got, tt.want)
		}
	}
}

func TestStart_OnlyUnderParent(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	tr := FromTracer(provider.Tracer("test"))

	ctx, span := tr.Start(context.Background(), "orphan")
	span.End()
	if span.SpanContext().IsValid() || ctx != context.Background() {
		t.Fatalf("expected no-op span without a parent")
	}

	parentCtx, parent := provider.Tracer("test").Start(context.Background(), "request")
	_, child := tr.Start(parentCtx, "usecase.MapService.Markers")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected parent and child spans, got %d", len(spans))
	}
	if spans[0].Name != "usecase.MapService.Markers" || spans[0].Parent.SpanID() != parent.SpanContext().SpanID() {
		t.Fatalf("unexpected child span: %+v", spans[0])
	}
}
