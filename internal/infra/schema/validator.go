package schema

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed recipes_cfg.schema.json
var manifestSchema []byte

// Validator runs the embedded v2 manifest schema over recipes.cfg documents
// before any field extraction happens, so type errors surface with their
// JSON location instead of as decode failures.
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("recipes_cfg.schema.json", bytes.NewReader(manifestSchema)); err != nil {
		return nil, fmt.Errorf("load manifest schema: %w", err)
	}

	compiled, err := compiler.Compile("recipes_cfg.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

func (v *Validator) Validate(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(doc))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := v.schema.Validate(value); err != nil {
		return err
	}
	return nil
}
