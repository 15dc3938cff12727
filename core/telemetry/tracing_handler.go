package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the name of the tracer used by the hotswap packages.
const InstrumentationName = "github.com/anoideaopen/hotswap"

// TracingHandler starts the spans of proxy invocations.
type TracingHandler struct {
	Tracer trace.Tracer
}

// NewTracingHandler returns a handler tracing through tp. A nil provider selects
// the global one.
func NewTracingHandler(tp trace.TracerProvider) *TracingHandler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingHandler{Tracer: tp.Tracer(InstrumentationName)}
}

// StartNewSpan starts new span
func (th *TracingHandler) StartNewSpan(
	ctx context.Context,
	spanName string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	return th.Tracer.Start(ctx, spanName, opts...)
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
