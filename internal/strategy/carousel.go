package strategy

import (
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/registry"
	"github.com/sdui-go/interpreter/internal/widget"
)

type carouselStrategy struct{}

func init() {
	registry.Default.Register(TypeCarousel, carouselStrategy{})
}

// carouselPages lists the child types a carousel shows as pages. Anything
// else becomes an unknown-component page.
var carouselPages = map[string]bool{
	TypeCard:     true,
	TypeStat:     true,
	TypeCarousel: true,
	TypeHScroll:  true,
}

// Render lays children out as pages, one visible at a time.
func (carouselStrategy) Render(s *registry.Scope, c *descriptor.Component) *widget.Widget {
	return &widget.Widget{
		Kind:     widget.KindCarousel,
		Title:    c.Prop("title"),
		Children: s.DispatchChildren(c.Children, func(tag string) bool { return carouselPages[tag] }),
	}
}
