package descriptor

// Response is the root structure of a component payload.
type Response struct {
	Components []Component `json:"components"`
}

// Component is one node of the server-defined UI tree.
//
// Properties are display strings keyed by name; a type reads the keys it
// knows and ignores the rest. Children are owned by value, so a tree built
// by decoding is acyclic.
type Component struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
	Children   []Component       `json:"children,omitempty"`
}

// Prop gets a property; empty if missing.
func (c *Component) Prop(key string) string {
	return c.PropOr(key, "")
}

// PropOr gets a property, returning def when the key is absent.
// A key present with an empty value is returned as is.
func (c *Component) PropOr(key, def string) string {
	if c == nil || c.Properties == nil {
		return def
	}
	v, ok := c.Properties[key]
	if !ok {
		return def
	}
	return v
}

// Count returns the number of nodes in the response, children included.
func (r *Response) Count() int {
	if r == nil {
		return 0
	}
	n := 0
	Walk(r.Components, func(string, *Component) bool {
		n++
		return true
	})
	return n
}

// Walk visits components depth-first in document order. path is the
// positional key of the node ("0", "0.1", ...). Returning false from fn skips
// the node's children.
func Walk(components []Component, fn func(path string, c *Component) bool) {
	walk("", components, fn)
}

func walk(prefix string, components []Component, fn func(string, *Component) bool) {
	for i := range components {
		c := &components[i]
		path := Path(prefix, i)
		if fn(path, c) {
			walk(path, c.Children, fn)
		}
	}
}
