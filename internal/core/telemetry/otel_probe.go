package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mygene/internal/core/port"
)

const tracerName = "mygene"

// OTELProbe implements port.Telemetry on OpenTelemetry.
type OTELProbe struct {
	logger *slog.Logger
}

func NewOTELProbe(logger *slog.Logger) port.Telemetry {
	if logger == nil {
		logger = slog.Default()
	}

	return &OTELProbe{logger: logger}
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) End() {
	s.span.End()
}

func (s *otelSpan) SetAttributes(attrs map[string]interface{}) {
	s.span.SetAttributes(toOTelAttributes(attrs)...)
}

func (s *otelSpan) SetStatus(code string, message string) {
	switch code {
	case "ok":
		s.span.SetStatus(codes.Ok, message)
	case "error":
		s.span.SetStatus(codes.Error, message)
	default:
		s.span.SetStatus(codes.Unset, message)
	}
}

func (s *otelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func toOTelAttributes(attrs map[string]interface{}) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))

	for key, value := range attrs {
		switch v := value.(type) {
		case string:
			out = append(out, attribute.String(key, v))
		case int:
			out = append(out, attribute.Int(key, v))
		case int64:
			out = append(out, attribute.Int64(key, v))
		case float64:
			out = append(out, attribute.Float64(key, v))
		case bool:
			out = append(out, attribute.Bool(key, v))
		default:
			out = append(out, attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}

	return out
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	standard := []attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}

	standard = append(standard, toOTelAttributes(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("repository.%s.%s", entity, operation), trace.WithAttributes(standard...))

	return ctx, &otelSpan{span: span}
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, userID int, attrs map[string]interface{}) (context.Context, port.Span) {
	standard := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.Int("user.id", userID),
		attribute.String("component", "service"),
	}

	standard = append(standard, toOTelAttributes(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("service.%s.%s", service, operation), trace.WithAttributes(standard...))

	return ctx, &otelSpan{span: span}
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.String("entity", entity),
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		p.logger.ErrorContext(ctx, "Repository operation failed",
			"operation", operation,
			"entity", entity,
			"duration_ns", duration.Nanoseconds(),
			"error", err)
		return
	}

	span.SetStatus(codes.Ok, "")
}

func (p *OTELProbe) RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{}) {
	// Log arg types only, values may hold personal data
	safeArgs := make([]string, len(args))
	for i := range args {
		safeArgs[i] = fmt.Sprintf("%T", args[i])
	}

	p.logger.DebugContext(ctx, "Executing repository query",
		"operation", operation,
		"entity", entity,
		"query", query,
		"args_types", safeArgs)
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, userID int, metadata map[string]interface{}) {
	span := trace.SpanFromContext(ctx)

	attrs := []attribute.KeyValue{
		attribute.String("event", event),
		attribute.String("entity", entity),
		attribute.String("entity.id", entityID),
		attribute.Int("user.id", userID),
	}

	attrs = append(attrs, toOTelAttributes(metadata)...)

	span.AddEvent(fmt.Sprintf("%s.%s", entity, event), trace.WithAttributes(attrs...))
}

func (p *OTELProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)

	p.logger.ErrorContext(ctx, "Operation failed",
		"operation", operation,
		"error", err,
		"metadata", metadata)
}
