package strategy

import (
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/registry"
	"github.com/sdui-go/interpreter/internal/widget"
)

type statStrategy struct{}

func init() {
	registry.Default.Register(TypeStat, statStrategy{})
}

func (statStrategy) Render(s *registry.Scope, c *descriptor.Component) *widget.Widget {
	return &widget.Widget{
		Kind:     widget.KindStat,
		Label:    c.Prop("statName"),
		Value:    firstLine(c.Prop("value")),
		MaxLines: 1,
	}
}
