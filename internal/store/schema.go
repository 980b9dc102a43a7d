package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
)

const (
	tableKV          = "kv"
	tableAnswerEvent = "answer_events"
	tableLLMEvent    = "llm_events"
)

// ddl lists the CREATE statements for every table. {{id}} and {{ts}} are
// replaced per dialect.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id {{id}},
		session_id TEXT NOT NULL,
		question_no INTEGER NOT NULL,
		action TEXT NOT NULL,
		option_key TEXT NOT NULL DEFAULT '',
		selection TEXT NOT NULL DEFAULT '[]',
		complete BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session_id ON answer_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id {{id}},
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL
	)`,
}

// migrate creates missing tables and indexes. Existing tables are left as
// they are; ent's builders in dialect/sql cover queries, not DDL.
func (s *Store) migrate(ctx context.Context) error {
	id, ts := "INTEGER PRIMARY KEY AUTOINCREMENT", "DATETIME"
	if s.dialect == dialect.Postgres {
		id, ts = "BIGSERIAL PRIMARY KEY", "TIMESTAMPTZ"
	}
	r := strings.NewReplacer("{{id}}", id, "{{ts}}", ts)

	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
