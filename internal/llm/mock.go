package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests and offline use.
// Queued responses are served first, in order. Once the queue is empty the
// Handler, if any, answers; otherwise Generate fails as unavailable.
// Served content is validated against the request schema like a real
// provider's.
type MockProvider struct {
	// Handler answers requests when no canned response is queued.
	Handler func(Request) MockResponse

	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	var (
		resp MockResponse
		ok   bool
	)
	if len(m.responses) > 0 {
		resp, m.responses, ok = m.responses[0], m.responses[1:], true
	}
	handler := m.Handler
	m.mu.Unlock()

	switch {
	case ok:
	case handler != nil:
		resp = handler(req)
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns a copy of every request received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// offlineText fills every string field of an offline response.
const offlineText = "Offline mock response."

// OfflineHandler answers any request with the smallest value its schema
// accepts: required object fields are filled, strings carry offlineText,
// arrays are empty. It lets the mock stand in for a real provider when
// selected from configuration.
func OfflineHandler(req Request) MockResponse {
	var def map[string]any
	if req.Schema != nil {
		def = req.Schema.Definition
	}
	content, err := json.Marshal(placeholder(def))
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{Content: content}
}

func placeholder(def map[string]any) any {
	switch schemaType(def) {
	case "object":
		props, _ := def["properties"].(map[string]any)
		out := map[string]any{}
		for _, name := range stringSlice(def["required"]) {
			sub, _ := props[name].(map[string]any)
			out[name] = placeholder(sub)
		}
		return out
	case "array":
		return []any{}
	case "integer", "number":
		return 0
	case "boolean":
		return false
	case "null":
		return nil
	default:
		return offlineText
	}
}

// schemaType returns def's type, or the first one when several are allowed.
func schemaType(def map[string]any) string {
	switch t := def["type"].(type) {
	case string:
		return t
	default:
		if types := stringSlice(t); len(types) > 0 {
			return types[0]
		}
	}
	return ""
}

func stringSlice(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
