package httpapi

import (
	"context"

	"github.com/riskibarqy/stadium-matchmap/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

// Only handler spans are recorded; middleware and response helpers would
// double the span count per request without adding information.
var apiTracer = tracing.New("stadium-matchmap/internal/interfaces/httpapi").OnlyPrefix("httpapi.Handler.")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}
