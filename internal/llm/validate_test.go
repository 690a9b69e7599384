package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaCheck(t *testing.T) {
	schema := weekPlanSchema()
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", weekPlanJSON, false},
		{"empty tasks", `{"week":2,"focus":"","tasks":[]}`, false},
		{"missing required", `{"week":1,"focus":"x"}`, true},
		{"wrong type", `{"week":"um","focus":"x","tasks":[]}`, true},
		{"below minimum", `{"week":0,"focus":"x","tasks":[]}`, true},
		{"extra property", `{"week":1,"focus":"x","tasks":[],"notes":"y"}`, true},
		{"wrong item type", `{"week":1,"focus":"x","tasks":[1,2]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Check(json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestSchemaCheck_NilSchema(t *testing.T) {
	var s *Schema
	assert.NoError(t, s.Check(json.RawMessage(`{"anything":"goes"}`)))
}

func TestSchemaCheck_BadDefinition(t *testing.T) {
	s := &Schema{Name: "broken", Definition: map[string]any{"$ref": "#/$defs/missing"}}

	err := s.Check(json.RawMessage(`{}`))
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Contains(t, err.Error(), `"broken"`)

	// The compile error is remembered rather than retried.
	assert.Equal(t, err.Error(), s.Check(json.RawMessage(`{}`)).Error())
}

func TestSchemaCheck_SameNameDifferentDefinitions(t *testing.T) {
	loose := &Schema{Name: "doc", Definition: map[string]any{"type": "object"}}
	strict := &Schema{Name: "doc", Definition: map[string]any{
		"type":     "object",
		"required": []string{"id"},
	}}

	assert.NoError(t, loose.Check(json.RawMessage(`{}`)))
	assert.Error(t, strict.Check(json.RawMessage(`{}`)))
}
