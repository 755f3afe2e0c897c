package render

import (
	"log/slog"

	"github.com/sdui-go/interpreter/internal/events"
	"github.com/sdui-go/interpreter/internal/registry"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithRegistry sets the strategy registry (default: registry.Default).
func WithRegistry(r *registry.Registry) Option {
	return func(rd *Renderer) { rd.reg = r }
}

// WithEvents sets the sink action components signal into.
func WithEvents(s events.Sink) Option {
	return func(rd *Renderer) { rd.events = s }
}

// WithImages sets the image loader cards request from. Without one, card
// images stay in the loading state.
func WithImages(i registry.ImageRequester) Option {
	return func(rd *Renderer) { rd.images = i }
}

// WithTracer sets the tracer used for render-pass spans.
func WithTracer(t trace.Tracer) Option {
	return func(rd *Renderer) { rd.tracer = t }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(rd *Renderer) { rd.logger = l }
}
