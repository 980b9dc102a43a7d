package llm

import (
	"context"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // pass-through
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string", "description": "one paragraph"},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"key":  map[string]any{"type": "string"},
						"note": map[string]any{"type": "string"},
					},
					"required": []string{"key", "note"},
				},
			},
			"verdict": map[string]any{"type": "string", "enum": []any{"correct", "wrong"}},
		},
		"required": []any{"summary", "options"},
	}

	s := buildGeminiSchema(def)

	if s.Type != genai.TypeObject {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(s.Properties))
	}
	if s.Properties["summary"].Description != "one paragraph" {
		t.Errorf("summary description = %q", s.Properties["summary"].Description)
	}
	opts := s.Properties["options"]
	if opts.Type != genai.TypeArray || opts.Items.Type != genai.TypeObject {
		t.Fatalf("options = %s of %s", opts.Type, opts.Items.Type)
	}
	if len(opts.Items.Required) != 2 {
		t.Errorf("[]string required not carried over: %v", opts.Items.Required)
	}
	if len(s.Properties["verdict"].Enum) != 2 {
		t.Errorf("enum = %v", s.Properties["verdict"].Enum)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), Config{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
