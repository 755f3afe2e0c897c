// Package payload decodes component responses. A document that does not
// match the expected shape fails as a whole; no partial trees are returned.
package payload

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sdui-go/interpreter/internal/descriptor"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://sdui.schemas.local/component-response.schema.json"

var responseSchema = mustCompile()

func mustCompile() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("payload: load schema: %v", err))
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("payload: compile schema: %v", err))
	}
	return s
}

// Decode stages.
const (
	StageSyntax = "syntax"
	StageSchema = "schema"
)

// DecodeError reports a payload that could not be decoded.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode payload (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses a JSON document of shape {"components": [...]}.
func Decode(data []byte) (*descriptor.Response, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Stage: StageSyntax, Err: err}
	}
	if err := responseSchema.Validate(doc); err != nil {
		return nil, &DecodeError{Stage: StageSchema, Err: err}
	}

	var resp descriptor.Response
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&resp); err != nil {
		return nil, &DecodeError{Stage: StageSyntax, Err: err}
	}
	return &resp, nil
}

// DecodeYAML parses the YAML form of the same document. Scalars are taken
// as written, so `value: 146` is the string "146"; only null stays null.
func DecodeYAML(data []byte) (*descriptor.Response, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &DecodeError{Stage: StageSyntax, Err: err}
	}
	doc, err := yamlValue(&root)
	if err != nil {
		return nil, &DecodeError{Stage: StageSyntax, Err: err}
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, &DecodeError{Stage: StageSyntax, Err: err}
	}
	return Decode(js)
}

// yamlValue converts a node to JSON-ready values, keeping every non-null
// scalar as its source text.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[k.Value] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}

// DecodeFile reads and decodes a payload file; .yaml and .yml files are read
// as YAML, everything else as JSON.
func DecodeFile(path string) (*descriptor.Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return Decode(data)
	}
}
