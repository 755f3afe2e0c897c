package payload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	resp, err := Decode([]byte(`{
		"components": [
			{"id": "k", "type": "carousel", "properties": {"title": "Planets"}, "children": [
				{"id": "p", "type": "planetCard", "properties": {"name": "Mars", "extra": "kept"}}
			]},
			{"id": "s", "type": "galaxyStats", "children": null}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, resp.Components, 2)
	assert.Equal(t, "Planets", resp.Components[0].Prop("title"))
	require.Len(t, resp.Components[0].Children, 1)
	assert.Equal(t, "kept", resp.Components[0].Children[0].Prop("extra"))
	assert.Nil(t, resp.Components[1].Children)
	assert.Equal(t, 3, resp.Count())
}

func TestDecodeEmptyComponents(t *testing.T) {
	resp, err := Decode([]byte(`{"components": []}`))
	require.NoError(t, err)
	assert.Empty(t, resp.Components)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		stage string
	}{
		{"not json", `{"components": [`, StageSyntax},
		{"missing components", `{}`, StageSchema},
		{"components not array", `{"components": {}}`, StageSchema},
		{"missing type", `{"components": [{"id": "1"}]}`, StageSchema},
		{"missing id", `{"components": [{"type": "planetCard"}]}`, StageSchema},
		{"numeric property", `{"components": [{"id": "1", "type": "galaxyStats", "properties": {"value": 4395}}]}`, StageSchema},
		{"children not array", `{"components": [{"id": "1", "type": "carousel", "children": "none"}]}`, StageSchema},
		{"bad nested child", `{"components": [{"id": "1", "type": "carousel", "children": [{"id": 2, "type": "x"}]}]}`, StageSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, resp)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.stage, de.Stage)
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	resp, err := DecodeYAML([]byte(`
components:
  - id: "1"
    type: galaxyStats
    properties:
      statName: Known Exoplanets
      value: "4,395"
`))
	require.NoError(t, err)
	require.Len(t, resp.Components, 1)
	assert.Equal(t, "4,395", resp.Components[0].Prop("value"))

}

func TestDecodeYAMLKeepsScalarsAsText(t *testing.T) {
	resp, err := DecodeYAML([]byte(`
components:
  - id: 1
    type: galaxyStats
    properties:
      statName: Moons
      value: 146
      ratio: 0.50
      visible: true
    children: null
  - id: 2
    type: carousel
    children:
      - {id: 3, type: planetCard, properties: {name: Mars}}
`))
	require.NoError(t, err)
	require.Len(t, resp.Components, 2)

	stat := resp.Components[0]
	assert.Equal(t, "1", stat.ID)
	assert.Equal(t, "146", stat.Prop("value"))
	assert.Equal(t, "0.50", stat.Prop("ratio"))
	assert.Equal(t, "true", stat.Prop("visible"))
	assert.Nil(t, stat.Children)

	require.Len(t, resp.Components[1].Children, 1)
	assert.Equal(t, "3", resp.Components[1].Children[0].ID)
}

func TestDecodeYAMLErrors(t *testing.T) {
	_, err := DecodeYAML([]byte("components: [\n"))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, StageSyntax, de.Stage)

	_, err = DecodeYAML([]byte("components:\n  - id: a\n"))
	require.ErrorAs(t, err, &de)
	assert.Equal(t, StageSchema, de.Stage)

	_, err = DecodeYAML(nil)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, StageSchema, de.Stage)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	js := filepath.Join(dir, "screen.json")
	yml := filepath.Join(dir, "screen.yml")
	require.NoError(t, os.WriteFile(js, []byte(`{"components":[{"id":"a","type":"exploreButton"}]}`), 0o644))
	require.NoError(t, os.WriteFile(yml, []byte("components:\n  - {id: b, type: carousel}\n"), 0o644))

	resp, err := DecodeFile(js)
	require.NoError(t, err)
	assert.Equal(t, "exploreButton", resp.Components[0].Type)

	resp, err = DecodeFile(yml)
	require.NoError(t, err)
	assert.Equal(t, "carousel", resp.Components[0].Type)

	_, err = DecodeFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
