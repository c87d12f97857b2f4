package telemetry

import (
	"context"
	"time"

	"mygene/internal/core/port"
)

// NoOpProbe implements Telemetry with no operations - useful for testing or
// when telemetry is disabled.
type NoOpProbe struct{}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{}
}

type noOpSpan struct{}

func (s *noOpSpan) End()                                       {}
func (s *noOpSpan) SetAttributes(attrs map[string]interface{}) {}
func (s *noOpSpan) SetStatus(code string, message string)      {}
func (s *noOpSpan) RecordError(err error)                      {}

func (p *NoOpProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	return ctx, &noOpSpan{}
}

func (p *NoOpProbe) StartServiceSpan(ctx context.Context, service string, operation string, userID int, attrs map[string]interface{}) (context.Context, port.Span) {
	return ctx, &noOpSpan{}
}

func (p *NoOpProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{}) {
}

func (p *NoOpProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, userID int, metadata map[string]interface{}) {
}

func (p *NoOpProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
}
