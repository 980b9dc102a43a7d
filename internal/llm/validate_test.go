package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func noteSchema() *Schema {
	return &Schema{
		Name:        "test-option-note",
		Description: "A note on one answer option",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"key":     map[string]any{"type": "string", "minLength": 1},
				"note":    map[string]any{"type": "string"},
				"verdict": map[string]any{"type": "string", "enum": []any{"correct", "wrong"}},
				"refs": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"key", "note"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"key":"A","note":"covers CI","verdict":"correct"}`, false},
		{"without optional", `{"key":"A","note":"n"}`, false},
		{"with array", `{"key":"A","note":"n","refs":["x","y"]}`, false},
		{"missing required", `{"key":"A"}`, true},
		{"wrong type", `{"key":"A","note":3}`, true},
		{"bad enum", `{"key":"A","note":"n","verdict":"maybe"}`, true},
		{"empty key", `{"key":"","note":"n"}`, true},
		{"bad array item", `{"key":"A","note":"n","refs":[1]}`, true},
		{"malformed json", `{"key":`, true},
		{"empty body", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(noteSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected *ErrInvalidResponse, got %T", err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("Content = %s, want %s", inv.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json at all`)); err != nil {
		t.Fatalf("nil schema must accept anything, got %v", err)
	}
}
