package render

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/events"
	"github.com/sdui-go/interpreter/internal/registry"
	"github.com/sdui-go/interpreter/internal/widget"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/sdui-go/interpreter/render"

// Renderer turns component sequences into renderable sequences.
type Renderer struct {
	reg    *registry.Registry
	events events.Sink
	images registry.ImageRequester
	tracer trace.Tracer
	logger *slog.Logger
}

// New returns a renderer with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, o := range opts {
		o(r)
	}
	if r.reg == nil {
		r.reg = registry.Default
	}
	if r.events == nil {
		r.events = events.Discard
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("component", "render")
	return r
}

// Registry returns the registry the renderer dispatches through.
func (r *Renderer) Registry() *registry.Registry { return r.reg }

// Pass is the output of one render.
type Pass struct {
	ID      uuid.UUID
	Widgets []*widget.Widget
	// Unknown counts nodes rendered as placeholders.
	Unknown int

	index map[string]*widget.Widget
}

// NewPass returns a pass over widgets with its key index built.
func NewPass(id uuid.UUID, widgets []*widget.Widget) *Pass {
	return &Pass{ID: id, Widgets: widgets, index: widget.Index(widgets)}
}

// Lookup returns the widget at key. The index is fixed when the pass is
// built, so Lookup is safe for concurrent use.
func (p *Pass) Lookup(key string) (*widget.Widget, bool) {
	if p == nil {
		return nil, false
	}
	w, ok := p.index[key]
	return w, ok
}

// RenderResponse renders a response's root components. A nil response
// renders as an empty pass.
func (r *Renderer) RenderResponse(ctx context.Context, resp *descriptor.Response) *Pass {
	if resp == nil {
		return r.Render(ctx, nil)
	}
	return r.Render(ctx, resp.Components)
}

// Render dispatches every component through the registry and returns one
// widget per component, in order. A node that fails renders as a
// placeholder; the pass always completes.
func (r *Renderer) Render(ctx context.Context, components []descriptor.Component) *Pass {
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.New()
	start := time.Now()

	ctx, span := r.tracer.Start(ctx, "sdui.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("sdui.pass_id", id.String()),
			attribute.Int("sdui.roots", len(components)),
		),
	)
	defer span.End()

	scope := registry.NewScope(ctx, registry.ScopeConfig{
		Pass:     id,
		Registry: r.reg,
		Events:   r.events,
		Images:   r.images,
		Logger:   r.logger,
	})

	widgets := make([]*widget.Widget, 0, len(components))
	for i := range components {
		widgets = append(widgets, scope.Dispatch(descriptor.Path("", i), &components[i]))
	}
	pass := NewPass(id, widgets)
	pass.Unknown = scope.Unknown()

	span.SetAttributes(attribute.Int("sdui.unknown", pass.Unknown))
	r.logger.DebugContext(ctx, "render pass complete",
		"pass", pass.ID.String(),
		"roots", len(components),
		"unknown", pass.Unknown,
		"duration", time.Since(start),
	)
	return pass
}
