package registry

import (
	"sort"
	"sync"

	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/widget"
)

// Strategy turns one component into one renderable.
type Strategy interface {
	Render(s *Scope, c *descriptor.Component) *widget.Widget
}

// StrategyFunc adapts a function to a Strategy.
type StrategyFunc func(s *Scope, c *descriptor.Component) *widget.Widget

func (f StrategyFunc) Render(s *Scope, c *descriptor.Component) *widget.Widget { return f(s, c) }

// Default is the global strategy registry.
var Default = New()

// Registry maps component type tags to render strategies.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	fallback   Strategy
}

// New returns a registry with no tags and the unknown-component fallback.
func New() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		fallback:   Unknown{},
	}
}

// Register adds a strategy for the given type tag.
func (r *Registry) Register(tag string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[tag] = s
}

// Get returns the strategy for the tag, or nil and false.
func (r *Registry) Get(tag string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[tag]
	return s, ok
}

// Has reports whether the tag has a registered strategy.
func (r *Registry) Has(tag string) bool {
	_, ok := r.Get(tag)
	return ok
}

// Resolve returns the strategy for the tag. Unregistered tags resolve to
// the fallback, so every input yields a strategy.
func (r *Registry) Resolve(tag string) Strategy {
	if s, ok := r.Get(tag); ok {
		return s
	}
	return r.Fallback()
}

// Fallback returns the strategy used for unregistered tags.
func (r *Registry) Fallback() Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// ListSupportedTypes returns all registered type tags, sorted.
func (r *Registry) ListSupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.strategies))
	for t := range r.strategies {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
