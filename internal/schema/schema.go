// Package schema compiles and caches JSON Schemas used to validate catalog
// files, persisted progress records and LLM output.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Definition is a named JSON Schema document.
type Definition struct {
	// Name identifies the schema. It doubles as the cache key, so two
	// definitions must never share a name.
	Name string

	// Document is the JSON Schema as a Go map.
	Document map[string]any
}

// compiled caches compiled schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// ValidationError reports a document that failed schema validation.
type ValidationError struct {
	Schema string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate parses raw as JSON and checks it against def.
// Parse failures and schema violations are both returned as *ValidationError.
func Validate(def Definition, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ValidationError{Schema: def.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return ValidateValue(def, parsed)
}

// ValidateValue checks an already decoded JSON value against def.
func ValidateValue(def Definition, value any) error {
	sch, err := Compile(def)
	if err != nil {
		return err
	}
	if err := sch.Validate(value); err != nil {
		return &ValidationError{Schema: def.Name, Err: err}
	}
	return nil
}

// Compile returns the cached compiled schema for def, compiling it on first use.
func Compile(def Definition) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(def.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value rather than typed Go maps
	// (e.g. []string must become []any).
	raw, err := json.Marshal(def.Document)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", def.Name, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", def.Name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", def.Name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", def.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", def.Name, err)
	}

	compiled.Store(def.Name, sch)
	return sch, nil
}
