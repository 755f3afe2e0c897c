package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/events"
	"github.com/sdui-go/interpreter/internal/widget"
)

// ImageRequester starts an image retrieval for the widget at key in the
// given pass. It must return without waiting for the retrieval.
type ImageRequester interface {
	Request(pass uuid.UUID, key, url string)
}

// Scope is the dispatch context of one render pass, positioned at a node.
// Strategies read the node key from it and recurse through Dispatch.
type Scope struct {
	ctx      context.Context
	pass     uuid.UUID
	registry *Registry
	events   events.Sink
	images   ImageRequester
	logger   *slog.Logger
	key      string

	parent  *Scope
	unknown int
}

// ScopeConfig carries the collaborators of a pass.
type ScopeConfig struct {
	Pass     uuid.UUID
	Registry *Registry
	Events   events.Sink
	Images   ImageRequester
	Logger   *slog.Logger
}

// NewScope returns the root scope of a pass. Nil collaborators are replaced
// by defaults: the Default registry, a discarding sink, no image loading.
func NewScope(ctx context.Context, cfg ScopeConfig) *Scope {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &Scope{
		ctx:      ctx,
		pass:     cfg.Pass,
		registry: cfg.Registry,
		events:   cfg.Events,
		images:   cfg.Images,
		logger:   cfg.Logger,
	}
	if s.registry == nil {
		s.registry = Default
	}
	if s.events == nil {
		s.events = events.Discard
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Context returns the context the pass was started with.
func (s *Scope) Context() context.Context { return s.ctx }

// Pass returns the identity of the render pass.
func (s *Scope) Pass() uuid.UUID { return s.pass }

// Key returns the positional key of the node being rendered.
func (s *Scope) Key() string { return s.key }

// Events returns the activation sink.
func (s *Scope) Events() events.Sink { return s.events }

// Logger returns the pass logger.
func (s *Scope) Logger() *slog.Logger { return s.logger }

// Unknown returns how many nodes rendered through the fallback so far.
func (s *Scope) Unknown() int { return s.root().unknown }

// RequestImage asks for the image at url for the current node. It reports
// false when the pass has no image loader.
func (s *Scope) RequestImage(url string) bool {
	if s.images == nil {
		return false
	}
	s.images.Request(s.pass, s.key, url)
	return true
}

// Dispatch renders c at key through the registry.
func (s *Scope) Dispatch(key string, c *descriptor.Component) *widget.Widget {
	return s.dispatch(key, c, s.registry.Resolve(c.Type))
}

// DispatchChildren renders children in order under the current node.
// Children whose type accept rejects render through the fallback in place;
// a nil accept admits every type.
func (s *Scope) DispatchChildren(children []descriptor.Component, accept func(tag string) bool) []*widget.Widget {
	out := make([]*widget.Widget, 0, len(children))
	for i := range children {
		c := &children[i]
		key := descriptor.Path(s.key, i)
		if accept != nil && !accept(c.Type) {
			out = append(out, s.dispatch(key, c, s.registry.Fallback()))
			continue
		}
		out = append(out, s.Dispatch(key, c))
	}
	return out
}

func (s *Scope) dispatch(key string, c *descriptor.Component, st Strategy) (w *widget.Widget) {
	child := s.at(key)
	fallback := s.registry.Fallback()

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(s.ctx, "strategy panicked, rendering placeholder",
				"key", key, "id", c.ID, "type", c.Type, "panic", fmt.Sprint(r))
			w = fallback.Render(child, c)
			s.finish(w, key, c, true)
		}
	}()

	w = st.Render(child, c)
	if w == nil {
		w = fallback.Render(child, c)
	}
	s.finish(w, key, c, w.Kind == widget.KindUnknown)
	return w
}

func (s *Scope) finish(w *widget.Widget, key string, c *descriptor.Component, unknown bool) {
	w.Key = key
	w.ID = c.ID
	w.Type = c.Type
	if unknown {
		s.root().unknown++
		s.logger.DebugContext(s.ctx, "unknown component", "key", key, "id", c.ID, "type", c.Type)
	}
}

// at returns a copy of the scope positioned at key. Copies share the root
// so counters stay per pass.
func (s *Scope) at(key string) *Scope {
	child := *s
	child.key = key
	child.parent = s.root()
	return &child
}

func (s *Scope) root() *Scope {
	if s.parent != nil {
		return s.parent
	}
	return s
}
