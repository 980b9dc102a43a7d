package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/store"
)

// EventLog appends every controller transition to the store's answer event
// log under one session ID. Use Observe as the controller's observer.
type EventLog struct {
	repo      store.EventRepo
	log       *zap.Logger
	sessionID string
	timeout   time.Duration
}

// NewEventLog starts a new session. A nil logger discards log output.
func NewEventLog(repo store.EventRepo, log *zap.Logger) *EventLog {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New().String()
	return &EventLog{
		repo:      repo,
		log:       log.With(zap.String("session_id", id)),
		sessionID: id,
		timeout:   2 * time.Second,
	}
}

// SessionID returns the ID events are recorded under.
func (e *EventLog) SessionID() string {
	return e.sessionID
}

// Observe records ev. Failures are logged and dropped.
func (e *EventLog) Observe(ev quiz.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	action := store.ActionToggle
	if ev.Kind == quiz.EventNavigate {
		action = store.ActionNavigate
	}

	err := e.repo.AppendAnswer(ctx, store.AnswerEventData{
		SessionID:  e.sessionID,
		QuestionNo: ev.No,
		Action:     action,
		Option:     ev.Option,
		Selection:  ev.Selection,
		Complete:   ev.Complete,
		Status:     ev.Status.String(),
	})
	if err != nil {
		e.log.Warn("record answer event", zap.Error(err), zap.Int("question", ev.No))
	}
}
