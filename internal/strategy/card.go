package strategy

import (
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/registry"
	"github.com/sdui-go/interpreter/internal/widget"
)

type cardStrategy struct{}

func init() {
	registry.Default.Register(TypeCard, cardStrategy{})
}

// Render builds a card with an image region, a title and a body. The image
// is requested without waiting; an empty URL goes straight to the
// placeholder state.
func (cardStrategy) Render(s *registry.Scope, c *descriptor.Component) *widget.Widget {
	url := c.Prop("imageUrl")
	img := &widget.Image{URL: url, State: widget.ImageLoading}
	if url == "" {
		img.State = widget.ImageFailed
		img.Err = "no image url"
	} else {
		s.RequestImage(url)
	}
	return &widget.Widget{
		Kind:  widget.KindCard,
		Title: c.Prop("name"),
		Body:  c.Prop("description"),
		Image: img,
	}
}
