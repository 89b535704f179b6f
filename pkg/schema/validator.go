// Package schema validates documents against a JSON Schema loaded once at
// process start. The schema is an external artifact: a configured file path
// (or raw bytes), immutable for the process lifetime.
package schema

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	"github.com/aretw0/planstore/pkg/core"
)

// Validator holds the compiled schema in two forms: the full schema, and a
// derived "partial" schema with every required constraint stripped at every
// nesting level. The partial form gates patch input, which may carry any
// subset of fields.
type Validator struct {
	full    *gojsonschema.Schema
	partial *gojsonschema.Schema
}

// NewFromFile loads and compiles the schema document at path. Failure here is
// fatal at startup, never a per-request condition.
func NewFromFile(path string) (*Validator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	v, err := New(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema from %s: %w", path, err)
	}
	return v, nil
}

// New compiles a Validator from raw schema bytes.
func New(raw []byte) (*Validator, error) {
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("schema is not a JSON object: %w", err)
	}

	full, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tree))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	relaxed, ok := stripRequired(tree).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema is not a JSON object")
	}
	partial, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(relaxed))
	if err != nil {
		return nil, fmt.Errorf("failed to compile partial schema: %w", err)
	}

	return &Validator{full: full, partial: partial}, nil
}

// Validate enforces the full structural constraints, required fields
// included. Used on the create-or-replace path.
func (v *Validator) Validate(doc core.Document) error {
	return run(v.full, doc)
}

// ValidatePartial enforces type, enum and shape constraints but not
// required-field presence, at any nesting level. Used on patch input.
func (v *Validator) ValidatePartial(doc core.Document) error {
	return run(v.partial, doc)
}

func run(s *gojsonschema.Schema, doc core.Document) error {
	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation aborted: %w", err)
	}
	if result.Valid() {
		return nil
	}

	// Carry every violation, not just the first.
	messages := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		messages = append(messages, violation.String())
	}
	return &core.ValidationError{Messages: messages}
}

// stripRequired returns a copy of the schema tree with every "required"
// keyword removed, recursively. Only keys whose value is an array are
// treated as the keyword, so a property that happens to be named "required"
// (whose value is a nested schema object) survives.
func stripRequired(node any) any {
	switch node := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, v := range node {
			if k == "required" {
				if _, isList := v.([]any); isList {
					continue
				}
			}
			out[k] = stripRequired(v)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, v := range node {
			out[i] = stripRequired(v)
		}
		return out
	default:
		return node
	}
}

var _ core.Validator = (*Validator)(nil)
