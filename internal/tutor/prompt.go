package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/llm"
)

const systemPrompt = `You are a concise study coach for a multiple-choice certification exam. The learner has already answered and seen the correct answer. Explain the reasoning without repeating the question.`

func buildUserMessage(q catalog.Question, sec *catalog.Section) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question %d:\n%s\n\nOptions:\n", q.No, q.Question)
	for _, k := range q.OptionKeys() {
		fmt.Fprintf(&b, "%s. %s\n", k, q.Options[k])
	}
	fmt.Fprintf(&b, "\nCorrect answer: %s\n", strings.Join(q.Best, ", "))

	if len(q.Analysis) > 0 {
		b.WriteString("\nReference analysis:\n")
		for _, k := range q.OptionKeys() {
			if a, ok := q.Analysis[k]; ok {
				fmt.Fprintf(&b, "%s: %s\n", k, a)
			}
		}
	}

	if sec != nil {
		fmt.Fprintf(&b, "\nSyllabus section: %s\n", sec.Name)
		if len(sec.Knows) > 0 {
			fmt.Fprintf(&b, "Knowledge: %s\n", strings.Join(sec.Knows, "; "))
		}
		if len(sec.Skills) > 0 {
			fmt.Fprintf(&b, "Skills: %s\n", strings.Join(sec.Skills, "; "))
		}
	}

	b.WriteString(`
Instructions:
1. Write a summary of 2-4 sentences on the concept the question tests.
2. Give one short note per option saying why it is or is not correct.
3. Use plain text. No markdown.`)

	return b.String()
}

// ExplanationSchema is the JSON shape requested from the model.
var ExplanationSchema = &llm.Schema{
	Name:        "question-explanation",
	Description: "Explanation of a multiple-choice question with a note per option",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "The concept the question tests, 2-4 sentences",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"key": map[string]any{
							"type":        "string",
							"description": "Option letter",
						},
						"note": map[string]any{
							"type":        "string",
							"description": "Why this option is or is not correct",
						},
					},
					"required":             []any{"key", "note"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"summary", "options"},
		"additionalProperties": false,
	},
}
