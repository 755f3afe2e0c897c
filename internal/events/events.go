// Package events defines the sink that action components signal into.
//
// A signal carries only the id of the component that was activated. Sinks
// must return promptly; an activation never changes the rendered tree.
package events

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Sink receives activation signals.
type Sink interface {
	Activated(ctx context.Context, componentID string)
}

// Func adapts a function to a Sink.
type Func func(ctx context.Context, componentID string)

func (f Func) Activated(ctx context.Context, componentID string) { f(ctx, componentID) }

// Discard drops every signal.
var Discard Sink = Func(func(context.Context, string) {})

// LogSink writes one log record per activation.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Activated(ctx context.Context, componentID string) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	l.InfoContext(ctx, "component activated", "component_id", componentID)
}

// TraceSink records each activation as a short span.
type TraceSink struct {
	Tracer trace.Tracer
}

func (s TraceSink) Activated(ctx context.Context, componentID string) {
	if s.Tracer == nil {
		return
	}
	_, span := s.Tracer.Start(ctx, "sdui.activate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("sdui.component_id", componentID)),
	)
	span.End()
}

// Multi fans a signal out to every sink in order.
type Multi []Sink

func (m Multi) Activated(ctx context.Context, componentID string) {
	for _, s := range m {
		if s != nil {
			s.Activated(ctx, componentID)
		}
	}
}
