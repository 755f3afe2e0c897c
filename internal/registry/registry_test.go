package registry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/logger"
	"github.com/sdui-go/interpreter/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(kind widget.Kind) Strategy {
	return StrategyFunc(func(s *Scope, c *descriptor.Component) *widget.Widget {
		return &widget.Widget{Kind: kind, Title: c.Prop("name")}
	})
}

func TestResolve(t *testing.T) {
	r := New()
	r.Register("planetCard", leaf(widget.KindCard))

	_, isUnknown := r.Resolve("planetCard").(Unknown)
	assert.False(t, isUnknown)

	for _, tag := range []string{"mystery", "", "PLANETCARD", "planetCard "} {
		_, isUnknown := r.Resolve(tag).(Unknown)
		assert.True(t, isUnknown, "tag %q", tag)
	}
	assert.True(t, r.Has("planetCard"))
	assert.False(t, r.Has("mystery"))
}

func TestListSupportedTypes(t *testing.T) {
	r := New()
	r.Register("stat", leaf(widget.KindStat))
	r.Register("card", leaf(widget.KindCard))
	assert.Equal(t, []string{"card", "stat"}, r.ListSupportedTypes())
}

func newScope(r *Registry) *Scope {
	return NewScope(context.Background(), ScopeConfig{Pass: uuid.New(), Registry: r, Logger: logger.Discard()})
}

func TestDispatchStampsIdentity(t *testing.T) {
	r := New()
	r.Register("card", leaf(widget.KindCard))
	s := newScope(r)

	w := s.Dispatch("3", &descriptor.Component{ID: "c1", Type: "card", Properties: map[string]string{"name": "Mars"}})
	assert.Equal(t, widget.KindCard, w.Kind)
	assert.Equal(t, "3", w.Key)
	assert.Equal(t, "c1", w.ID)
	assert.Equal(t, "card", w.Type)
	assert.Equal(t, "Mars", w.Title)
	assert.Equal(t, 0, s.Unknown())
}

func TestDispatchUnknown(t *testing.T) {
	s := newScope(New())
	w := s.Dispatch("0", &descriptor.Component{ID: "x", Type: "mystery"})
	assert.Equal(t, widget.KindUnknown, w.Kind)
	assert.Equal(t, UnknownTitle, w.Title)
	assert.Equal(t, "mystery", w.Type)
	assert.Equal(t, 1, s.Unknown())
}

func TestDispatchRecoversPanics(t *testing.T) {
	r := New()
	r.Register("boom", StrategyFunc(func(*Scope, *descriptor.Component) *widget.Widget {
		panic("bad node")
	}))
	r.Register("nil", StrategyFunc(func(*Scope, *descriptor.Component) *widget.Widget { return nil }))
	s := newScope(r)

	var w *widget.Widget
	require.NotPanics(t, func() {
		w = s.Dispatch("0", &descriptor.Component{ID: "b", Type: "boom"})
	})
	assert.Equal(t, widget.KindUnknown, w.Kind)
	assert.Equal(t, "0", w.Key)

	w = s.Dispatch("1", &descriptor.Component{ID: "n", Type: "nil"})
	assert.Equal(t, widget.KindUnknown, w.Kind)
	assert.Equal(t, 2, s.Unknown())
}

func TestDispatchChildren(t *testing.T) {
	r := New()
	r.Register("card", leaf(widget.KindCard))
	r.Register("stat", leaf(widget.KindStat))
	r.Register("row", StrategyFunc(func(s *Scope, c *descriptor.Component) *widget.Widget {
		return &widget.Widget{
			Kind:     widget.KindHScroll,
			Children: s.DispatchChildren(c.Children, func(tag string) bool { return tag != "stat" }),
		}
	}))
	s := newScope(r)

	row := &descriptor.Component{ID: "r", Type: "row", Children: []descriptor.Component{
		{ID: "a", Type: "card"},
		{ID: "b", Type: "stat"},
		{ID: "c", Type: "mystery"},
	}}
	w := s.Dispatch("2", row)
	require.Len(t, w.Children, 3)
	assert.Equal(t, widget.KindCard, w.Children[0].Kind)
	assert.Equal(t, widget.KindUnknown, w.Children[1].Kind, "rejected type renders as a placeholder in place")
	assert.Equal(t, widget.KindUnknown, w.Children[2].Kind)
	assert.Equal(t, []string{"2.0", "2.1", "2.2"}, []string{w.Children[0].Key, w.Children[1].Key, w.Children[2].Key})
	assert.Equal(t, "stat", w.Children[1].Type)
	assert.Equal(t, 2, s.Unknown())

	empty := s.DispatchChildren(nil, nil)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

type recorder struct {
	keys []string
	urls []string
}

func (r *recorder) Request(_ uuid.UUID, key, url string) {
	r.keys = append(r.keys, key)
	r.urls = append(r.urls, url)
}

func TestScopePosition(t *testing.T) {
	pass := uuid.New()
	var keys []string
	r := New()
	r.Register("row", StrategyFunc(func(s *Scope, c *descriptor.Component) *widget.Widget {
		keys = append(keys, s.Key())
		assert.Equal(t, pass, s.Pass())
		assert.NotNil(t, s.Logger())
		return &widget.Widget{Kind: widget.KindHScroll, Children: s.DispatchChildren(c.Children, nil)}
	}))
	s := NewScope(context.Background(), ScopeConfig{Pass: pass, Registry: r, Logger: logger.Discard()})
	assert.Empty(t, s.Key())

	s.Dispatch("1", &descriptor.Component{Type: "row", Children: []descriptor.Component{
		{Type: "row"},
		{Type: "row", Children: []descriptor.Component{{Type: "row"}}},
	}})
	assert.Equal(t, []string{"1", "1.0", "1.1", "1.1.0"}, keys)
}

func TestRequestImage(t *testing.T) {
	r := New()
	r.Register("img", StrategyFunc(func(s *Scope, c *descriptor.Component) *widget.Widget {
		s.RequestImage(c.Prop("imageUrl"))
		return &widget.Widget{Kind: widget.KindCard}
	}))
	rec := &recorder{}
	s := NewScope(context.Background(), ScopeConfig{Registry: r, Images: rec})
	s.Dispatch("4", &descriptor.Component{Type: "img", Properties: map[string]string{"imageUrl": "http://x/p.png"}})

	assert.Equal(t, []string{"4"}, rec.keys)
	assert.Equal(t, []string{"http://x/p.png"}, rec.urls)
	assert.False(t, newScope(r).RequestImage("http://x"))
}
