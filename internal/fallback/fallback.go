// Package fallback embeds the component response shown when the remote
// payload cannot be fetched or decoded.
package fallback

import (
	_ "embed"
	"fmt"

	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/payload"
)

//go:embed fallback.json
var raw []byte

// The embedded payload is part of the binary; a payload that does not
// decode is a build defect and fails at startup.
var embedded = mustDecode(raw)

func mustDecode(data []byte) *descriptor.Response {
	resp, err := payload.Decode(data)
	if err != nil {
		panic(fmt.Sprintf("fallback: embedded payload is malformed: %v", err))
	}
	return resp
}

// Response returns a fresh copy of the fallback response. Callers own it.
func Response() *descriptor.Response {
	return &descriptor.Response{Components: clone(embedded.Components)}
}

// Raw returns the embedded JSON document.
func Raw() []byte {
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

func clone(cs []descriptor.Component) []descriptor.Component {
	if cs == nil {
		return nil
	}
	out := make([]descriptor.Component, len(cs))
	for i, c := range cs {
		out[i] = descriptor.Component{ID: c.ID, Type: c.Type, Children: clone(c.Children)}
		if c.Properties != nil {
			out[i].Properties = make(map[string]string, len(c.Properties))
			for k, v := range c.Properties {
				out[i].Properties[k] = v
			}
		}
	}
	return out
}
