package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/quizcard/internal/config"
)

func TestMockProvider_ServesQueueInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)
	ctx := context.Background()

	resp, err := mock.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.InputTokens != 10 || resp.StopReason != "end" {
		t.Fatalf("first response = %+v", resp)
	}

	resp, err = mock.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"b":2}` {
		t.Fatalf("second content = %s", resp.Content)
	}

	calls := mock.Calls()
	if len(calls) != 2 || calls[1].Messages[0].Content != "second" {
		t.Fatalf("calls = %+v", calls)
	}
}

func TestMockProvider_EmptyQueueIsUnavailable(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestMockProvider_HandlerAfterQueue(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"queued"`)})
	mock.Handler = func(req Request) MockResponse {
		return MockResponse{Content: json.RawMessage(`"handled"`)}
	}
	ctx := context.Background()

	first, _ := mock.Generate(ctx, Request{})
	second, _ := mock.Generate(ctx, Request{})
	if string(first.Content) != `"queued"` || string(second.Content) != `"handled"` {
		t.Fatalf("got %s then %s", first.Content, second.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("CallCount = %d, want 2", mock.CallCount())
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	want := &ErrRateLimit{RetryAfter: time.Second, Err: errors.New("slow down")}
	_, err := NewMockProvider(MockResponse{Err: want}).Generate(context.Background(), Request{})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"key":"A"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: noteSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if got := PurposeFrom(ctx); got != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q, want unknown", got)
	}
	if got := PurposeFrom(WithPurpose(ctx, "explain")); got != "explain" {
		t.Errorf("PurposeFrom = %q, want explain", got)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")

	cfg := FromConfig(config.LLM{Provider: ProviderAnthropic})
	if cfg.APIKey != "sk-env" {
		t.Errorf("APIKey = %q, want key from ANTHROPIC_API_KEY", cfg.APIKey)
	}
	if cfg.Model != "claude-haiku" {
		t.Errorf("Model = %q, want default claude-haiku", cfg.Model)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}

	cfg = FromConfig(config.LLM{Provider: ProviderOpenAI, APIKey: "sk-cfg", Model: "gpt-4o", Timeout: time.Minute})
	if cfg.APIKey != "sk-cfg" || cfg.Model != "gpt-4o" || cfg.Timeout != time.Minute {
		t.Errorf("explicit values not kept: %+v", cfg)
	}

	if FromConfig(config.LLM{}).Enabled() {
		t.Error("empty provider must be disabled")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic with key", Config{Provider: ProviderAnthropic, APIKey: "k"}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, APIKey: "k"}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"mock", Config{Provider: ProviderMock}, false},
		{"unknown", Config{Provider: "llama-farm"}, true},
		{"disabled", Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := (Config{}).Validate(); !errors.Is(err, ErrDisabled) {
		t.Errorf("disabled config error = %v, want ErrDisabled", err)
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	if _, err := NewProvider(ctx, Config{}, nil, nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("disabled: err = %v, want ErrDisabled", err)
	}

	p, err := NewProvider(ctx, Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Errorf("mock provider type = %T", p)
	}

	p, err = NewProvider(ctx, Config{Provider: ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini", Retry: DefaultRetry()}, nil, nil)
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("openai provider type = %T, want *RetryProvider", p)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestNewProvider_MockAnswersOffline(t *testing.T) {
	ctx := context.Background()
	p, err := NewProvider(ctx, Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}

	sch := &Schema{Name: "offline", Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
			"count":   map[string]any{"type": []any{"integer", "null"}},
			"items":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"extra":   map[string]any{"type": "string"},
		},
		"required":             []any{"summary", "count", "items"},
		"additionalProperties": false,
	}}
	resp, err := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "explain"}}, Schema: sch})
	if err != nil {
		t.Fatalf("schema request: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(resp.Content, &got); err != nil {
		t.Fatalf("decode %s: %v", resp.Content, err)
	}
	if got["summary"] != offlineText {
		t.Errorf("summary = %v", got["summary"])
	}
	if _, ok := got["extra"]; ok {
		t.Errorf("optional field filled: %s", resp.Content)
	}

	resp, err = p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("plain request: %v", err)
	}
	if string(resp.Content) != `"`+offlineText+`"` {
		t.Errorf("plain content = %s", resp.Content)
	}
}
