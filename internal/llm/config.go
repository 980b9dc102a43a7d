package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/quizcard/internal/config"
)

// Provider names accepted in configuration.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// defaultModels is used when no model is configured.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
	ProviderGemini:     "gemini-flash",
}

// keyEnv names the conventional API key variable per provider, consulted
// when no key is configured.
var keyEnv = map[string]string{
	ProviderAnthropic:  "ANTHROPIC_API_KEY",
	ProviderOpenAI:     "OPENAI_API_KEY",
	ProviderOpenRouter: "OPENROUTER_API_KEY",
	ProviderGemini:     "GEMINI_API_KEY",
}

// Config selects and configures one provider.
type Config struct {
	// Provider is one of the Provider* constants. Empty disables LLM features.
	Provider string
	APIKey   string
	Model    string
	BaseURL  string // optional endpoint override

	Retry RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is the retry policy used by FromConfig.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// FromConfig builds a Config from the application's llm section, filling
// the model and API key from defaults and the provider's usual environment
// variable when they are not set.
func FromConfig(c config.LLM) Config {
	cfg := Config{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		Model:    c.Model,
		BaseURL:  c.BaseURL,
		Retry:    DefaultRetry(),
		Timeout:  c.Timeout,
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	if cfg.APIKey == "" {
		if name, ok := keyEnv[cfg.Provider]; ok {
			cfg.APIKey = os.Getenv(name)
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}

// Enabled reports whether a provider is configured.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider is known and has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("%s provider needs an API key (QUIZCARD_LLM_API_KEY or %s)", c.Provider, keyEnv[c.Provider])
		}
	case ProviderMock:
	case "":
		return ErrDisabled
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
