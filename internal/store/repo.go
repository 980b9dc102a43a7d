package store

import "context"

// Answer event actions.
const (
	ActionToggle   = "toggle"
	ActionNavigate = "navigate"
)

// AnswerEventData captures one quiz transition.
type AnswerEventData struct {
	SessionID  string
	QuestionNo int
	Action     string
	Option     string
	Selection  []string
	Complete   bool
	Status     string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventCounts aggregates the answer event log.
type EventCounts struct {
	Sessions int
	ByAction map[string]int
	ByStatus map[string]int // toggle events only, by status after the toggle
}

// LLMUsage aggregates LLM calls for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int64
	OutputTokens int64
	AvgLatencyMs int64
}

// EventRepo provides append and aggregate access to the event log.
type EventRepo interface {
	// AppendAnswer records a quiz transition.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// Counts summarizes the answer event log.
	Counts(ctx context.Context) (EventCounts, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose, ordered by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}
