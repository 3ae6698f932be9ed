package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache holds compiled schemas keyed by Schema.Name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateJSON checks a decoded JSON value (as produced by json.Unmarshal
// into an any) against schema. It returns *ErrInvalidResponse on failure
// and nil when schema is nil.
func ValidateJSON(schema *Schema, value any) error {
	if schema == nil {
		return nil
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := compiled.Validate(value); err != nil {
		return &ErrInvalidResponse{Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	return nil
}

// ValidateText decodes raw JSON text and validates it against schema.
func ValidateText(schema *Schema, text string) error {
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return &ErrInvalidResponse{Text: text, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	err := ValidateJSON(schema, parsed)
	if invalid, ok := err.(*ErrInvalidResponse); ok {
		invalid.Text = text
	}
	return err
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON document, not Go maps with typed
	// slices, so round-trip the definition.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	actual, _ := schemaCache.LoadOrStore(schema.Name, compiled)
	return actual.(*jsonschema.Schema), nil
}
