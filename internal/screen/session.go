// Package screen holds the presentation state: the render pass currently
// on screen and the rule that only its own image results are applied.
package screen

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/imageload"
	"github.com/sdui-go/interpreter/internal/render"
	"github.com/sdui-go/interpreter/internal/widget"
)

// Session tracks the current render pass.
type Session struct {
	renderer *render.Renderer
	logger   *slog.Logger

	mu      sync.RWMutex
	current *render.Pass
}

// New returns a session rendering through r.
func New(r *render.Renderer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{renderer: r, logger: logger.With("component", "screen")}
}

// Show renders resp and makes the result the current pass. Image results
// that arrive while the pass is being built wait for it to become current.
func (s *Session) Show(ctx context.Context, resp *descriptor.Response) *render.Pass {
	s.mu.Lock()
	defer s.mu.Unlock()
	pass := s.renderer.RenderResponse(ctx, resp)
	s.current = pass
	return pass
}

// Current returns the pass on screen, or nil before the first Show.
func (s *Session) Current() *render.Pass {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Apply writes an image result into the current pass. Results from any
// other pass, for keys that are not cards, or that are not final, are
// discarded and Apply returns false.
func (s *Session) Apply(c imageload.Completion) bool {
	if !c.Image.Terminal() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != c.Pass {
		s.logger.Debug("discarding stale image result", "pass", c.Pass.String(), "key", c.Key)
		return false
	}
	w, ok := s.current.Lookup(c.Key)
	if !ok || w.Kind != widget.KindCard || w.Image == nil {
		return false
	}
	*w.Image = c.Image
	return true
}

// View calls fn with the current pass while holding the session's read
// lock, so image results are not applied mid-read.
func (s *Session) View(fn func(p *render.Pass)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.current)
}
