package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WithSpan runs fn inside a span, recording the error outcome.
// A nil tracer runs fn without any tracing overhead.
func WithSpan(ctx context.Context, tracer trace.Tracer, name string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	if tracer == nil {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	err := fn(ctx)
	RecordOutcome(span, err)
	return err
}

// RecordOutcome sets the span status from an operation result.
// Errors are recorded on the span with their message.
func RecordOutcome(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
