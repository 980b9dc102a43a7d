package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/llm"
	"github.com/abhisek/quizcard/internal/progress"
)

const explanationJSON = `{"summary":"Small batches lower risk.","options":[{"key":"A","note":"Daily merges."},{"key":"B","note":"Batches changes."}]}`

func sampleQuestion(t *testing.T) (catalog.Question, *catalog.Outline) {
	t.Helper()
	ctx := context.Background()
	cat, err := catalog.Load(ctx, "")
	require.NoError(t, err)
	outline, err := catalog.LoadOutline(ctx, "")
	require.NoError(t, err)
	q, ok := cat.Lookup(3)
	require.True(t, ok)
	return q, outline
}

func TestExplainGeneratesAndCaches(t *testing.T) {
	q, outline := sampleQuestion(t)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(explanationJSON)})
	cache := progress.NewMemoryKV()
	svc := New(mock, cache, nil, DefaultConfig())

	e, err := svc.Explain(context.Background(), q, outline)
	require.NoError(t, err)
	assert.Equal(t, "Small batches lower risk.", e.Summary)
	note, ok := e.Note("B")
	assert.True(t, ok)
	assert.Equal(t, "Batches changes.", note)
	_, ok = e.Note("Z")
	assert.False(t, ok)

	raw, ok, err := cache.Get(context.Background(), "explain:3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, explanationJSON, raw)

	// Second call is served from the cache; the mock queue is empty.
	again, err := svc.Explain(context.Background(), q, outline)
	require.NoError(t, err)
	assert.Equal(t, e, again)
	assert.Equal(t, 1, mock.CallCount())
}

func TestExplainWithConfiguredMock(t *testing.T) {
	q, outline := sampleQuestion(t)
	provider, err := llm.NewProvider(context.Background(), llm.Config{Provider: llm.ProviderMock}, nil, nil)
	require.NoError(t, err)
	svc := New(provider, nil, nil, DefaultConfig())
	require.True(t, svc.Enabled())

	e, err := svc.Explain(context.Background(), q, outline)
	require.NoError(t, err)
	assert.NotEmpty(t, e.Summary)
}

func TestExplainPrompt(t *testing.T) {
	q, outline := sampleQuestion(t)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(explanationJSON)})
	svc := New(mock, nil, nil, DefaultConfig())

	_, err := svc.Explain(context.Background(), q, outline)
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	req := calls[0]
	assert.Same(t, ExplanationSchema, req.Schema)
	assert.Equal(t, 1024, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	msg := req.Messages[0].Content
	for _, want := range []string{
		"Question 3:",
		"A. Trunk-based development",
		"D. Long-lived release branches",
		"Correct answer: A, C",
		"Syllabus section: Small batches",
		"Feature toggles",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestExplainWithoutOutlineSection(t *testing.T) {
	q, _ := sampleQuestion(t)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(explanationJSON)})
	svc := New(mock, nil, nil, DefaultConfig())

	_, err := svc.Explain(context.Background(), q, nil)
	require.NoError(t, err)
	assert.NotContains(t, mock.Calls()[0].Messages[0].Content, "Syllabus section")
}

func TestExplainDisabled(t *testing.T) {
	q, outline := sampleQuestion(t)
	svc := New(nil, progress.NewMemoryKV(), nil, DefaultConfig())

	assert.False(t, svc.Enabled())
	_, err := svc.Explain(context.Background(), q, outline)
	assert.True(t, IsDisabled(err))
}

func TestExplainDisabledServesCache(t *testing.T) {
	q, outline := sampleQuestion(t)
	cache := progress.NewMemoryKV()
	require.NoError(t, cache.Set(context.Background(), "explain:3", explanationJSON))
	svc := New(nil, cache, nil, DefaultConfig())

	e, err := svc.Explain(context.Background(), q, outline)
	require.NoError(t, err)
	assert.Equal(t, "Small batches lower risk.", e.Summary)
}

func TestExplainProviderError(t *testing.T) {
	q, outline := sampleQuestion(t)
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}})
	svc := New(mock, nil, nil, DefaultConfig())

	_, err := svc.Explain(context.Background(), q, outline)
	require.Error(t, err)
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl))
	assert.True(t, strings.HasPrefix(err.Error(), "explain question 3"))
}

func TestExplainRejectsInvalidResponse(t *testing.T) {
	q, outline := sampleQuestion(t)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":"no options"}`)})
	cache := progress.NewMemoryKV()
	svc := New(mock, cache, nil, DefaultConfig())

	_, err := svc.Explain(context.Background(), q, outline)
	require.Error(t, err)
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)

	_, ok, _ := cache.Get(context.Background(), "explain:3")
	assert.False(t, ok)
}

func TestCorruptCacheEntryIsRegenerated(t *testing.T) {
	q, outline := sampleQuestion(t)
	cache := progress.NewMemoryKV()
	require.NoError(t, cache.Set(context.Background(), "explain:3", "{broken"))
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(explanationJSON)})

	core, logs := observer.New(zapcore.WarnLevel)
	svc := New(mock, cache, zap.New(core), DefaultConfig())

	e, err := svc.Explain(context.Background(), q, outline)
	require.NoError(t, err)
	assert.Equal(t, "Small batches lower risk.", e.Summary)
	assert.Equal(t, 1, logs.FilterMessage("discard cached explanation").Len())
}
