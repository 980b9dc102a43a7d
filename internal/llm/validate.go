package llm

import (
	"encoding/json"

	"github.com/abhisek/quizcard/internal/schema"
)

// validateResponse checks raw against s. A nil schema accepts anything.
// Failures come back as *ErrInvalidResponse.
func validateResponse(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	def := schema.Definition{Name: "llm-" + s.Name, Document: s.Definition}
	if err := schema.Validate(def, raw); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
