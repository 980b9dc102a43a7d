package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builders.
type eventRepo struct {
	store *Store
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	sel := data.Selection
	if sel == nil {
		sel = []string{}
	}
	selJSON, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}

	query, args := r.store.builder().Insert(tableAnswerEvent).
		Columns("session_id", "question_no", "action", "option_key", "selection", "complete", "status", "created_at").
		Values(data.SessionID, data.QuestionNo, data.Action, data.Option, string(selJSON), data.Complete, data.Status, time.Now().UTC()).
		Query()

	if _, err := r.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := r.store.builder().Insert(tableLLMEvent).
		Columns("provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message", "created_at").
		Values(data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage, time.Now().UTC()).
		Query()

	if _, err := r.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) Counts(ctx context.Context) (EventCounts, error) {
	counts := EventCounts{
		ByAction: make(map[string]int),
		ByStatus: make(map[string]int),
	}
	b := r.store.builder()

	query, args := b.Select(entsql.Count(entsql.Distinct("session_id"))).
		From(b.Table(tableAnswerEvent)).
		Query()
	if err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&counts.Sessions); err != nil {
		return counts, fmt.Errorf("count sessions: %w", err)
	}

	query, args = b.Select("action", entsql.Count("*")).
		From(b.Table(tableAnswerEvent)).
		GroupBy("action").
		Query()
	if err := r.groupCounts(ctx, query, args, counts.ByAction); err != nil {
		return counts, fmt.Errorf("count by action: %w", err)
	}

	query, args = b.Select("status", entsql.Count("*")).
		From(b.Table(tableAnswerEvent)).
		Where(entsql.EQ("action", ActionToggle)).
		GroupBy("status").
		Query()
	if err := r.groupCounts(ctx, query, args, counts.ByStatus); err != nil {
		return counts, fmt.Errorf("count by status: %w", err)
	}

	return counts, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	b := r.store.builder()
	query, args := b.Select("purpose", entsql.Count("*"), entsql.Sum("input_tokens"), entsql.Sum("output_tokens"), entsql.Sum("latency_ms")).
		From(b.Table(tableLLMEvent)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var usage []LLMUsage
	for rows.Next() {
		var (
			u       LLMUsage
			latency int64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &latency); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		if u.Calls > 0 {
			u.AvgLatencyMs = latency / int64(u.Calls)
		}
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan llm usage: %w", err)
	}

	failures := make(map[string]int)
	query, args = b.Select("purpose", entsql.Count("*")).
		From(b.Table(tableLLMEvent)).
		Where(entsql.EQ("success", false)).
		GroupBy("purpose").
		Query()
	if err := r.groupCounts(ctx, query, args, failures); err != nil {
		return nil, fmt.Errorf("count llm failures: %w", err)
	}
	for i := range usage {
		usage[i].Failures = failures[usage[i].Purpose]
	}
	return usage, nil
}

// groupCounts scans (label, count) rows into dst.
func (r *eventRepo) groupCounts(ctx context.Context, query string, args []any, dst map[string]int) error {
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			label string
			n     int
		)
		if err := rows.Scan(&label, &n); err != nil {
			return err
		}
		dst[label] = n
	}
	return rows.Err()
}
