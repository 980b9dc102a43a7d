package progress

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/store"
)

// failingKV fails every operation.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error         { return f.err }
func (f failingKV) Delete(context.Context, string) error              { return f.err }

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestRestore_Absent(t *testing.T) {
	a := NewAdapter(NewMemoryKV(), nil)
	res := a.Restore(context.Background())

	assert.Equal(t, Absent, res.State)
	assert.NoError(t, res.Err)
	assert.Equal(t, quiz.NewLedger(), res.Ledger())
}

func TestRestore_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{oops"},
		{"null", "null"},
		{"array", "[]"},
		{"selection not array", `{"answeredQuestions": {"1": "A"}}`},
		{"non-string key in selection", `{"answeredQuestions": {"1": [1]}}`},
		{"non-integer question key", `{"answeredQuestions": {"one": ["A"]}}`},
		{"fractional lastIndex", `{"answeredQuestions": {}, "lastIndex": 1.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(ctx, Key, tt.raw))

			log, logs := observedLogger()
			res := NewAdapter(kv, log).Restore(ctx)

			assert.Equal(t, Malformed, res.State)
			assert.Error(t, res.Err)
			assert.Equal(t, quiz.NewLedger(), res.Ledger())
			assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
		})
	}
}

func TestRestore_ReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	log, logs := observedLogger()
	res := NewAdapter(failingKV{err: boom}, log).Restore(context.Background())

	assert.Equal(t, Absent, res.State)
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, quiz.NewLedger(), res.Ledger())
	assert.Equal(t, 1, logs.FilterMessage("read progress").Len())
}

func TestRestore_OriginalFormat(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, Key, `{"answeredQuestions":{"1":["A","B"],"12":["C"]},"lastIndex":3}`))

	res := NewAdapter(kv, nil).Restore(ctx)
	require.Equal(t, Present, res.State)

	l := res.Ledger()
	assert.Equal(t, 3, l.LastIndex)
	assert.Equal(t, []string{"A", "B"}, l.Selection(1))
	assert.Equal(t, []string{"C"}, l.Selection(12))
}

func TestRestore_MissingLastIndexDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, Key, `{"answeredQuestions":{}}`))

	res := NewAdapter(kv, nil).Restore(ctx)
	require.Equal(t, Present, res.State)
	assert.Equal(t, 0, res.Ledger().LastIndex)
}

func TestRestore_TolerantShapes(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		lastIndex int
		answered  map[int][]string
	}{
		{"missing answered", `{"lastIndex":3}`, 3, map[int][]string{}},
		{"null answered", `{"answeredQuestions":null,"lastIndex":2}`, 2, map[int][]string{}},
		{"null lastIndex", `{"answeredQuestions":{"1":["A"]},"lastIndex":null}`, 0, map[int][]string{1: {"A"}}},
		{"empty object", `{}`, 0, map[int][]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(ctx, Key, tt.raw))

			res := NewAdapter(kv, nil).Restore(ctx)
			require.Equal(t, Present, res.State, "err: %v", res.Err)

			l := res.Ledger()
			assert.Equal(t, tt.lastIndex, l.LastIndex)
			assert.Equal(t, tt.answered, l.Answered)
		})
	}
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	a := NewAdapter(kv, nil)

	l := quiz.NewLedger()
	l = quiz.Toggle(l, 4, "B", 2)
	l = quiz.Toggle(l, 4, "D", 2)
	l = quiz.Toggle(l, 9, "A", 1)
	l = quiz.Toggle(l, 9, "A", 1) // empty selection is kept
	l.LastIndex = 5
	a.Persist(ctx, l)

	raw, ok, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	require.True(t, ok)

	var generic map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &generic))
	assert.Contains(t, generic, "answeredQuestions")
	assert.Contains(t, generic, "lastIndex")

	res := a.Restore(ctx)
	require.Equal(t, Present, res.State)
	assert.Equal(t, l, res.Ledger())
}

func TestPersist_SwallowsWriteErrors(t *testing.T) {
	log, logs := observedLogger()
	a := NewAdapter(failingKV{err: errors.New("read-only")}, log)

	assert.NotPanics(t, func() { a.Persist(context.Background(), quiz.NewLedger()) })
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	a := NewAdapter(kv, nil)

	a.Persist(ctx, quiz.Toggle(quiz.NewLedger(), 1, "A", 1))
	require.Equal(t, Present, a.Restore(ctx).State)

	require.NoError(t, a.Reset(ctx))
	assert.Equal(t, Absent, a.Restore(ctx).State)

	err := NewAdapter(failingKV{err: errors.New("x")}, nil).Reset(ctx)
	assert.Error(t, err)
}

func TestAdapterDrivesController(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.New([]catalog.Question{
		{No: 1, Options: map[string]string{"A": "a", "B": "b", "C": "c"}, Best: []string{"B", "C"}, Choose: 2},
		{No: 2, Options: map[string]string{"X": "x", "Y": "y"}, Best: []string{"Y"}, Choose: 1},
	})
	require.NoError(t, err)

	kv := NewMemoryKV()
	a := NewAdapter(kv, nil)

	c := quiz.NewController(cat, a.Restore(ctx).Ledger(), a)
	c.Toggle(ctx, "B")
	c.Toggle(ctx, "C")
	c.Next(ctx)
	c.Toggle(ctx, "X")

	// A fresh run resumes where the last one stopped.
	resumed := quiz.NewController(cat, a.Restore(ctx).Ledger(), a)
	assert.Equal(t, 1, resumed.Index())
	assert.Equal(t, []string{"B", "C"}, resumed.Selection(1))
	assert.Equal(t, []string{"X"}, resumed.Selection(2))
	assert.Equal(t, quiz.StatusNone, resumed.Status(2))
}

func TestAdapterOnStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.DriverSQLite, filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	a := NewAdapter(s, nil)
	l := quiz.Toggle(quiz.NewLedger(), 7, "A", 1)
	a.Persist(ctx, l)

	res := a.Restore(ctx)
	require.Equal(t, Present, res.State)
	assert.Equal(t, []string{"A"}, res.Ledger().Selection(7))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "absent", Absent.String())
	assert.Equal(t, "malformed", Malformed.String())
	assert.Equal(t, "present", Present.String())
}
