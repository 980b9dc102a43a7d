package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/abhisek/quizcard/internal/schema"
)

//go:embed sample/questions.json sample/outline.json
var sampleFS embed.FS

// maxRemoteSize caps the body read from a remote catalog or outline.
const maxRemoteSize = 16 << 20

// QuestionsSchema describes a catalog file: a JSON array of questions.
var QuestionsSchema = schema.Definition{
	Name: "question-catalog",
	Document: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"no":       map[string]any{"type": "integer"},
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":                 "object",
					"minProperties":        1,
					"additionalProperties": map[string]any{"type": "string"},
				},
				"best": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"choose": map[string]any{"type": "integer", "minimum": 1},
				"analysis": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"type": "string"},
				},
				"field": map[string]any{"type": "string"},
			},
			"required": []string{"no", "question", "options", "best", "choose"},
		},
	},
}

// Parse validates and decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	if err := schema.Validate(QuestionsSchema, data); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(questions)
}

// Load reads a catalog from source: an http(s) URL, a file path, or the
// embedded sample catalog when source is empty.
func Load(ctx context.Context, source string) (*Catalog, error) {
	data, err := readSource(ctx, source, "sample/questions.json")
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a catalog from a local JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// LoadURL fetches a catalog over HTTP.
func LoadURL(ctx context.Context, url string) (*Catalog, error) {
	data, err := fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return Parse(data)
}

// readSource resolves a source string to bytes. sample names the embedded
// fallback used for an empty source.
func readSource(ctx context.Context, source, sample string) ([]byte, error) {
	switch {
	case source == "":
		return sampleFS.ReadFile(sample)
	case isURL(source):
		return fetch(ctx, source)
	default:
		return os.ReadFile(source)
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
}
