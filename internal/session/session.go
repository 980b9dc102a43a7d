// Package session assembles one quiz run: the catalog, the outline, the
// restored ledger and a controller wired to persistence and the event log.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/progress"
	"github.com/abhisek/quizcard/internal/quiz"
)

// Deps are the collaborators a run is built from.
type Deps struct {
	// CatalogSource and OutlineSource are paths or URLs. Empty selects the
	// bundled sample.
	CatalogSource string
	OutlineSource string

	// Progress restores and persists the ledger. Nil disables persistence.
	Progress *progress.Adapter
	// Events records transitions. May be nil.
	Events *progress.EventLog
	Log    *zap.Logger
}

// Session is a loaded quiz run.
type Session struct {
	Controller *quiz.Controller
	// Outline is nil when the outline could not be loaded.
	Outline  *catalog.Outline
	Restored progress.Result
}

// Start loads the catalog and outline and restores progress. A catalog
// failure is returned; an outline failure is logged and leaves Outline nil.
func Start(ctx context.Context, deps Deps) (*Session, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	cat, err := catalog.Load(ctx, deps.CatalogSource)
	if err != nil {
		log.Error("load catalog", zap.String("source", deps.CatalogSource), zap.Error(err))
		return nil, fmt.Errorf("start session: %w", err)
	}

	outline, err := catalog.LoadOutline(ctx, deps.OutlineSource)
	if err != nil {
		log.Warn("load outline", zap.String("source", deps.OutlineSource), zap.Error(err))
		outline = nil
	}

	var (
		restored  progress.Result
		persister quiz.Persister
	)
	if deps.Progress != nil {
		restored = deps.Progress.Restore(ctx)
		persister = deps.Progress
	}

	ctrl := quiz.NewController(cat, restored.Ledger(), persister)
	if deps.Events != nil {
		ctrl.SetObserver(deps.Events.Observe)
	}

	log.Info("session started",
		zap.Int("questions", cat.Len()),
		zap.Stringer("progress", restored.State),
		zap.Int("index", ctrl.Index()),
	)
	return &Session{Controller: ctrl, Outline: outline, Restored: restored}, nil
}
