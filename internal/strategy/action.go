package strategy

import (
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/registry"
	"github.com/sdui-go/interpreter/internal/widget"
)

type actionStrategy struct{}

func init() {
	registry.Default.Register(TypeAction, actionStrategy{})
}

// Render builds a tappable control. Activation signals the component id to
// the pass event sink and nothing else.
func (actionStrategy) Render(s *registry.Scope, c *descriptor.Component) *widget.Widget {
	id := c.ID
	ctx := s.Context()
	sink := s.Events()
	return &widget.Widget{
		Kind:  widget.KindAction,
		Title: c.PropOr("title", DefaultActionTitle),
		OnActivate: func() {
			sink.Activated(ctx, id)
		},
	}
}
