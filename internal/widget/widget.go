// Package widget holds the renderable tree produced by a render pass.
package widget

// Kind enumerates the renderables the interpreter can produce.
type Kind string

const (
	KindCard     Kind = "card"
	KindStat     Kind = "stat"
	KindAction   Kind = "action"
	KindCarousel Kind = "carousel"
	KindHScroll  Kind = "hscroll"
	KindUnknown  Kind = "unknown"
)

// IsComposite reports whether widgets of this kind hold children.
func (k Kind) IsComposite() bool {
	return k == KindCarousel || k == KindHScroll
}

// Widget is one renderable node.
type Widget struct {
	Kind Kind `json:"kind"`
	// Key is the positional path of the node inside its pass ("0", "0.2.1").
	Key  string `json:"key"`
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
	// MaxLines caps Value; 0 means unbounded.
	MaxLines int    `json:"max_lines,omitempty"`
	Image    *Image `json:"image,omitempty"`
	// Width is the fixed slot width in cells, set when the parent lays
	// children out in fixed slots.
	Width int `json:"width,omitempty"`

	Children []*Widget `json:"children,omitempty"`

	OnActivate func() `json:"-"`
}

// Activate fires the activation hook if there is one.
func (w *Widget) Activate() bool {
	if w == nil || w.OnActivate == nil {
		return false
	}
	w.OnActivate()
	return true
}

// Walk visits widgets depth-first in order.
func Walk(ws []*Widget, fn func(w *Widget)) {
	for _, w := range ws {
		if w == nil {
			continue
		}
		fn(w)
		Walk(w.Children, fn)
	}
}

// Index maps every widget key in the tree to its widget.
func Index(ws []*Widget) map[string]*Widget {
	out := make(map[string]*Widget)
	Walk(ws, func(w *Widget) {
		out[w.Key] = w
	})
	return out
}
