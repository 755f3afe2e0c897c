package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropDefaults(t *testing.T) {
	c := &Component{Properties: map[string]string{"name": "Earth", "empty": ""}}

	assert.Equal(t, "Earth", c.Prop("name"))
	assert.Equal(t, "", c.Prop("missing"))
	assert.Equal(t, "Explore", c.PropOr("missing", "Explore"))
	assert.Equal(t, "", c.PropOr("empty", "Explore"), "present keys win over the default")

	var nilProps Component
	assert.Equal(t, "x", nilProps.PropOr("a", "x"))
	var nilComp *Component
	assert.Equal(t, "", nilComp.Prop("a"))
}

func TestPropValuesAreNotParsed(t *testing.T) {
	c := &Component{Properties: map[string]string{"value": "4,395"}}
	assert.Equal(t, "4,395", c.Prop("value"))
}

func TestWalkPaths(t *testing.T) {
	comps := []Component{
		{ID: "a", Children: []Component{{ID: "a0"}, {ID: "a1", Children: []Component{{ID: "a10"}}}}},
		{ID: "b"},
	}
	var got []string
	Walk(comps, func(path string, c *Component) bool {
		got = append(got, path+"="+c.ID)
		return true
	})
	assert.Equal(t, []string{"0=a", "0.0=a0", "0.1=a1", "0.1.0=a10", "1=b"}, got)

	resp := &Response{Components: comps}
	assert.Equal(t, 5, resp.Count())
	assert.Equal(t, 0, (*Response)(nil).Count())
}

func TestWalkSkipChildren(t *testing.T) {
	comps := []Component{{ID: "a", Children: []Component{{ID: "a0"}}}, {ID: "b"}}
	var got []string
	Walk(comps, func(path string, c *Component) bool {
		got = append(got, c.ID)
		return false
	})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestInspect(t *testing.T) {
	known := func(tag string) bool { return tag == "planetCard" }
	resp := &Response{Components: []Component{
		{ID: "1", Type: "planetCard"},
		{ID: "1", Type: "planetCard"},
		{ID: "", Type: "mystery"},
		{ID: "3"},
	}}

	warns := Inspect(resp, known)
	types := make([]string, 0, len(warns))
	for _, w := range warns {
		types = append(types, w.Type)
		assert.Equal(t, "warning", w.Severity)
	}
	assert.ElementsMatch(t, []string{"duplicate_id", "schema_warning", "unknown_type", "schema_warning"}, types)

	require.Len(t, Inspect(&Response{Components: []Component{{ID: "x", Type: "y"}}}, nil), 0)
}

func TestInspectEmpty(t *testing.T) {
	warns := Inspect(&Response{}, nil)
	require.Len(t, warns, 1)
	assert.Equal(t, "response has no components", warns[0].Message)

	require.Len(t, Inspect(nil, nil), 1)
}
