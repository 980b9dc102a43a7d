// Package tutor asks a language model to explain a question once its
// answer has been revealed.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/llm"
)

// Cache stores generated explanations by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Explanation is the model's commentary on one question.
type Explanation struct {
	Summary string       `json:"summary"`
	Options []OptionNote `json:"options"`
}

// OptionNote explains why a single option is or is not correct.
type OptionNote struct {
	Key  string `json:"key"`
	Note string `json:"note"`
}

// Note returns the note for option key, if the model wrote one.
func (e *Explanation) Note(key string) (string, bool) {
	for _, o := range e.Options {
		if o.Key == key {
			return o.Note, true
		}
	}
	return "", false
}

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	// Timeout bounds one Explain call. Zero means no extra bound.
	Timeout time.Duration
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.2, Timeout: 30 * time.Second}
}

// Service generates and caches explanations.
type Service struct {
	provider llm.Provider
	cache    Cache
	log      *zap.Logger
	cfg      Config
}

// New creates a tutor. Without a provider Explain serves only cached
// explanations and otherwise returns llm.ErrDisabled, as does a nil Service.
// cache may be nil.
func New(provider llm.Provider, cache Cache, log *zap.Logger, cfg Config) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cache: cache, log: log, cfg: cfg}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

func cacheKey(no int) string {
	return "explain:" + strconv.Itoa(no)
}

// Explain returns the explanation for q, generating it on a cache miss.
// outline may be nil.
func (s *Service) Explain(ctx context.Context, q catalog.Question, outline *catalog.Outline) (*Explanation, error) {
	if s == nil {
		return nil, llm.ErrDisabled
	}
	if s.cache != nil {
		if e, ok := s.cached(ctx, q.No); ok {
			return e, nil
		}
	}
	if !s.Enabled() {
		return nil, llm.ErrDisabled
	}

	var section *catalog.Section
	if outline != nil {
		if sec, ok := outline.Lookup(q.Field); ok {
			section = &sec
		}
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "explain")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(q, section)},
		},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explain question %d: %w", q.No, err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(q.No), string(resp.Content)); err != nil {
			s.log.Warn("cache explanation", zap.Int("question", q.No), zap.Error(err))
		}
	}
	return &out, nil
}

func (s *Service) cached(ctx context.Context, no int) (*Explanation, bool) {
	raw, ok, err := s.cache.Get(ctx, cacheKey(no))
	if err != nil {
		s.log.Warn("read cached explanation", zap.Int("question", no), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var e Explanation
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		s.log.Warn("discard cached explanation", zap.Int("question", no), zap.Error(err))
		return nil, false
	}
	return &e, true
}

// IsDisabled reports whether err means no provider is configured.
func IsDisabled(err error) bool {
	return errors.Is(err, llm.ErrDisabled)
}
