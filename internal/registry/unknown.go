package registry

import (
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/widget"
)

// UnknownTitle is the label carried by every fallback renderable.
const UnknownTitle = "Unknown component"

// Unknown renders a visible placeholder for components no strategy handles.
type Unknown struct{}

func (Unknown) Render(s *Scope, c *descriptor.Component) *widget.Widget {
	return &widget.Widget{
		Kind:  widget.KindUnknown,
		Title: UnknownTitle,
		Body:  c.Type,
	}
}
