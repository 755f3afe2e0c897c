package view

import "github.com/sdui-go/interpreter/internal/widget"

// State is the presentation state that is not part of the rendered tree:
// which widget has focus, which page each carousel shows, how far each row
// is scrolled. Keys are widget keys.
type State struct {
	Focus   string
	Pages   map[string]int
	Offsets map[string]int
}

// NewState returns an empty state.
func NewState() State {
	return State{Pages: make(map[string]int), Offsets: make(map[string]int)}
}

// Page returns the carousel page for key, clamped to [0, n).
func (s State) Page(key string, n int) int {
	return clamp(s.Pages[key], n)
}

// Offset returns the first visible row slot for key, clamped to [0, n).
func (s State) Offset(key string, n int) int {
	return clamp(s.Offsets[key], n)
}

// Step moves the carousel page or row offset of w by delta. It reports
// whether w is steppable.
func (s State) Step(w *widget.Widget, delta int) bool {
	if w == nil {
		return false
	}
	switch w.Kind {
	case widget.KindCarousel:
		s.Pages[w.Key] = clamp(s.Pages[w.Key]+delta, len(w.Children))
	case widget.KindHScroll:
		s.Offsets[w.Key] = clamp(s.Offsets[w.Key]+delta, len(w.Children))
	default:
		return false
	}
	return true
}

func clamp(v, n int) int {
	if n <= 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Focusable lists, in order, the keys of widgets that take focus: actions,
// carousels and rows. Only the visible page of a carousel is searched.
func Focusable(ws []*widget.Widget, st State) []string {
	var keys []string
	var visit func(ws []*widget.Widget)
	visit = func(ws []*widget.Widget) {
		for _, w := range ws {
			if w == nil {
				continue
			}
			switch w.Kind {
			case widget.KindAction:
				keys = append(keys, w.Key)
			case widget.KindCarousel:
				keys = append(keys, w.Key)
				if len(w.Children) > 0 {
					visit(w.Children[st.Page(w.Key, len(w.Children)) : st.Page(w.Key, len(w.Children))+1])
				}
			case widget.KindHScroll:
				keys = append(keys, w.Key)
				visit(w.Children)
			}
		}
	}
	visit(ws)
	return keys
}
