package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchema is the lazily compiled form of a Schema definition.
type compiledSchema struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// Check validates raw against the schema definition. A nil Schema
// accepts anything. Failures are returned as *ErrInvalidResponse.
func (s *Schema) Check(raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}

	compiled, err := s.compile()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", s.Name, err)}
	}
	return nil
}

// compile builds the validator once per Schema value.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.compiled.once.Do(func() {
		s.compiled.schema, s.compiled.err = compileDefinition(s.Name, s.Definition)
	})
	return s.compiled.schema, s.compiled.err
}

func compileDefinition(name string, def map[string]any) (*jsonschema.Schema, error) {
	// The compiler wants decoded JSON values; a round trip normalises
	// Go literals such as []string into []any.
	b, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("encode schema %q: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", name, err)
	}

	url := "mem://schemas/" + name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load schema %q: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}
	return compiled, nil
}
