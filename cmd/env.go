package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/config"
	"github.com/abhisek/quizcard/internal/llm"
	"github.com/abhisek/quizcard/internal/logger"
	"github.com/abhisek/quizcard/internal/progress"
	"github.com/abhisek/quizcard/internal/session"
	"github.com/abhisek/quizcard/internal/store"
	"github.com/abhisek/quizcard/internal/tutor"
)

// driverMemory keeps progress in process memory only.
const driverMemory = "memory"

// env is everything a command needs, opened from configuration.
type env struct {
	cfg *config.Config
	log *zap.Logger

	kv     progress.KV
	store  *store.Store // nil for the memory driver
	events store.EventRepo
}

// openEnv loads configuration, builds the logger and opens the progress store.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	e := &env{cfg: cfg, log: log}
	if cfg.DB.Driver == driverMemory {
		e.kv = progress.NewMemoryKV()
		return e, nil
	}

	dsn := cfg.DB.DSN
	if dsn == "" {
		if dsn, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}
	st, err := store.Open(cmd.Context(), cfg.DB.Driver, dsn)
	if err != nil {
		log.Error("open store", zap.String("driver", cfg.DB.Driver), zap.Error(err))
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.kv = st
	e.events = st.EventRepo()
	return e, nil
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.log.Sync()
}

// progress returns an adapter over the configured store.
func (e *env) progress() *progress.Adapter {
	return progress.NewAdapter(e.kv, e.log)
}

// sessionDeps builds the collaborators for one quiz run.
func (e *env) sessionDeps() session.Deps {
	deps := session.Deps{
		CatalogSource: e.cfg.Catalog,
		OutlineSource: e.cfg.Outline,
		Progress:      e.progress(),
		Log:           e.log,
	}
	if e.events != nil {
		deps.Events = progress.NewEventLog(e.events, e.log)
	}
	return deps
}

// tutor builds the explanation service. It is nil when no provider is
// configured; a misconfigured provider is reported and also yields nil.
func (e *env) tutor(ctx context.Context) (*tutor.Service, error) {
	cfg := llm.FromConfig(e.cfg.LLM)
	provider, err := llm.NewProvider(ctx, cfg, e.events, e.log)
	if errors.Is(err, llm.ErrDisabled) {
		return nil, nil
	}
	if err != nil {
		e.log.Warn("llm provider unavailable", zap.Error(err))
		return nil, err
	}

	tcfg := tutor.DefaultConfig()
	tcfg.Timeout = cfg.Timeout
	return tutor.New(provider, e.kv, e.log, tcfg), nil
}
