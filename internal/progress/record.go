// Package progress saves and restores the quiz ledger as a single JSON
// record in a key-value store.
package progress

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/schema"
)

// Key is the name the progress record is stored under.
const Key = "quizState"

// record is the persisted shape:
//
//	{"answeredQuestions": {"3": ["A", "C"]}, "lastIndex": 2}
type record struct {
	AnsweredQuestions map[string][]string `json:"answeredQuestions"`
	LastIndex         int                 `json:"lastIndex"`
}

// RecordSchema validates a stored record before it is decoded. Both fields
// may be missing or null; they then default to no answers and the first
// question.
var RecordSchema = schema.Definition{
	Name: "progress-record",
	Document: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answeredQuestions": map[string]any{
				"type": []string{"object", "null"},
				"additionalProperties": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"lastIndex": map[string]any{"type": []string{"integer", "null"}},
		},
	},
}

// encode serializes l into the stored record format.
func encode(l quiz.Ledger) ([]byte, error) {
	rec := record{
		AnsweredQuestions: make(map[string][]string, len(l.Answered)),
		LastIndex:         l.LastIndex,
	}
	for no, sel := range l.Answered {
		if sel == nil {
			sel = []string{}
		}
		rec.AnsweredQuestions[strconv.Itoa(no)] = sel
	}
	return json.Marshal(rec)
}

// decode validates raw and converts it to a ledger.
func decode(raw []byte) (quiz.Ledger, error) {
	if err := schema.Validate(RecordSchema, raw); err != nil {
		return quiz.Ledger{}, err
	}

	// null fields leave the zero values in place
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return quiz.Ledger{}, fmt.Errorf("decode record: %w", err)
	}

	l := quiz.NewLedger()
	l.LastIndex = rec.LastIndex
	for key, sel := range rec.AnsweredQuestions {
		no, err := strconv.Atoi(key)
		if err != nil {
			return quiz.Ledger{}, fmt.Errorf("question key %q is not an integer", key)
		}
		l.Answered[no] = append(make([]string, 0, len(sel)), sel...)
	}
	return l, nil
}
