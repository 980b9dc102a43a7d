package progress

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/quiz"
)

// KV is the string key-value store the record lives in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// State says what Restore found.
type State int

const (
	// Absent means no record was stored, or the store could not be read.
	Absent State = iota
	// Malformed means a record exists but could not be decoded.
	Malformed
	// Present means a record was decoded.
	Present
)

func (s State) String() string {
	switch s {
	case Malformed:
		return "malformed"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// Result is the outcome of Restore.
type Result struct {
	State State
	// Err is the read or decode failure, if any.
	Err error

	ledger quiz.Ledger
}

// Ledger returns the restored ledger, or the default empty ledger unless
// State is Present.
func (r Result) Ledger() quiz.Ledger {
	if r.State != Present {
		return quiz.NewLedger()
	}
	return r.ledger.Clone()
}

// Adapter persists the ledger to a KV. It implements quiz.Persister.
type Adapter struct {
	kv  KV
	log *zap.Logger
}

// NewAdapter creates an Adapter. A nil logger discards log output.
func NewAdapter(kv KV, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{kv: kv, log: log}
}

// Restore loads the saved ledger. It never fails: unreadable or invalid
// records are reported through Result and logged.
func (a *Adapter) Restore(ctx context.Context) Result {
	raw, ok, err := a.kv.Get(ctx, Key)
	if err != nil {
		a.log.Warn("read progress", zap.Error(err))
		return Result{State: Absent, Err: fmt.Errorf("read progress: %w", err)}
	}
	if !ok {
		return Result{State: Absent}
	}

	l, err := decode([]byte(raw))
	if err != nil {
		a.log.Warn("discarding malformed progress record", zap.Error(err))
		return Result{State: Malformed, Err: err}
	}

	a.log.Debug("progress restored",
		zap.Int("answered", len(l.Answered)),
		zap.Int("last_index", l.LastIndex),
	)
	return Result{State: Present, ledger: l}
}

// Persist overwrites the saved record with l. Failures are logged and
// otherwise ignored so the quiz keeps working without storage.
func (a *Adapter) Persist(ctx context.Context, l quiz.Ledger) {
	raw, err := encode(l)
	if err != nil {
		a.log.Warn("encode progress", zap.Error(err))
		return
	}
	if err := a.kv.Set(ctx, Key, string(raw)); err != nil {
		a.log.Warn("write progress", zap.Error(err))
	}
}

// Reset deletes the saved record.
func (a *Adapter) Reset(ctx context.Context) error {
	if err := a.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
