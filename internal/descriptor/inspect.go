package descriptor

import (
	"fmt"

	"github.com/sdui-go/interpreter/internal/result"
)

// Inspect reports advisory findings about a response. None of them stop a
// render: empty and duplicate ids are allowed, and unknown types render as a
// placeholder. known reports whether a type tag has a registered strategy;
// nil skips that check.
func Inspect(r *Response, known func(string) bool) []result.Warning {
	var warns []result.Warning
	if r == nil {
		return []result.Warning{result.NewWarning("schema_warning", "", "", "response is nil", "")}
	}
	if len(r.Components) == 0 {
		warns = append(warns, result.NewWarning(
			"schema_warning", "", "", "response has no components", "Send at least one component",
		))
	}

	seen := make(map[string]string)
	Walk(r.Components, func(path string, c *Component) bool {
		switch {
		case c.ID == "":
			warns = append(warns, result.NewWarning(
				"schema_warning", "", path,
				fmt.Sprintf("component at %s has empty id", path), "Set component.id",
			))
		case seen[c.ID] != "":
			warns = append(warns, result.NewWarning(
				"duplicate_id", c.ID, path,
				fmt.Sprintf("id %q already used at %s", c.ID, seen[c.ID]),
				"Use unique ids within a payload",
			))
		default:
			seen[c.ID] = path
		}
		if c.Type == "" {
			warns = append(warns, result.NewWarning(
				"schema_warning", c.ID, path, "component.type is empty", "Set component.type (e.g. planetCard)",
			))
		} else if known != nil && !known(c.Type) {
			warns = append(warns, result.NewWarning(
				"unknown_type", c.ID, path, "unsupported component type: "+c.Type,
				"Rendered as an unknown-component placeholder",
			))
		}
		return true
	})
	return warns
}
