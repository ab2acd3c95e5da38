// Package tracing starts OpenTelemetry spans that only ever attach to an
// existing parent. Code reached from untraced entry points (health checks,
// CLI runs without an exporter) therefore never emits orphan root spans.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var noop = trace.SpanFromContext(context.Background())

type Tracer struct {
	tracer trace.Tracer
	prefix string
}

// New returns a tracer for the given instrumentation scope.
func New(scope string) Tracer {
	return Tracer{tracer: otel.Tracer(scope)}
}

// FromTracer wraps an existing tracer, typically one from a test provider.
func FromTracer(tracer trace.Tracer) Tracer {
	return Tracer{tracer: tracer}
}

// OnlyPrefix restricts span creation to names starting with prefix. Other
// names get a no-op span.
func (t Tracer) OnlyPrefix(prefix string) Tracer {
	t.prefix = prefix
	return t
}

// Allows reports whether name would produce a real span given a parent.
func (t Tracer) Allows(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return t.prefix == "" || strings.HasPrefix(name, t.prefix)
}

// Start returns a child span of the span in ctx, or ctx unchanged and a
// no-op span when there is no valid parent or the name is filtered out.
func (t Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !t.Allows(name) {
		return ctx, noop
	}
	return t.tracer.Start(ctx, name, opts...)
}
