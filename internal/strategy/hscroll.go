package strategy

import (
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/registry"
	"github.com/sdui-go/interpreter/internal/widget"
)

// Slot widths, in terminal cells, for children of a horizontal row.
const (
	SlotCard      = 34
	SlotStat      = 22
	SlotAction    = 18
	SlotComposite = 40
	SlotOther     = 26
)

type hscrollStrategy struct{}

func init() {
	registry.Default.Register(TypeHScroll, hscrollStrategy{})
}

// Render lays children out in a scrollable row of fixed-width slots.
func (hscrollStrategy) Render(s *registry.Scope, c *descriptor.Component) *widget.Widget {
	children := s.DispatchChildren(c.Children, nil)
	for _, ch := range children {
		ch.Width = SlotWidth(ch.Kind)
	}
	return &widget.Widget{
		Kind:     widget.KindHScroll,
		Title:    c.Prop("title"),
		Children: children,
	}
}

// SlotWidth returns the row slot width for a child of the given kind.
func SlotWidth(k widget.Kind) int {
	switch {
	case k.IsComposite():
		return SlotComposite
	case k == widget.KindCard:
		return SlotCard
	case k == widget.KindStat:
		return SlotStat
	case k == widget.KindAction:
		return SlotAction
	default:
		return SlotOther
	}
}
