package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateQuestion is returned when two questions share the same number.
var ErrDuplicateQuestion = errors.New("duplicate question number")

// Question is a single multiple-choice item. Questions are immutable once loaded.
type Question struct {
	// No is the unique, stable ordering key.
	No int `json:"no"`

	// Question is the prompt text.
	Question string `json:"question"`

	// Options maps option key (e.g. "A") to option text.
	Options map[string]string `json:"options"`

	// Best is the set of correct option keys.
	Best []string `json:"best"`

	// Choose is how many options must be selected before the answer is revealed.
	Choose int `json:"choose"`

	// Analysis maps option key to the explanation shown after reveal.
	Analysis map[string]string `json:"analysis,omitempty"`

	// Field references an outline section as "<main>.<sub>".
	Field string `json:"field,omitempty"`
}

// OptionKeys returns the option keys in display order.
func (q Question) OptionKeys() []string {
	keys := make([]string, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsMulti reports whether the question takes more than one selection.
// Single-selection questions render as radio buttons.
func (q Question) IsMulti() bool {
	return q.Choose > 1
}

// Catalog is an ordered, read-only collection of questions.
type Catalog struct {
	questions []Question
	index     map[int]int // question No -> position
}

// New builds a Catalog sorted ascending by No.
func New(questions []Question) (*Catalog, error) {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].No < qs[j].No })

	index := make(map[int]int, len(qs))
	for i, q := range qs {
		if _, dup := index[q.No]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateQuestion, q.No)
		}
		index[q.No] = i
	}
	return &Catalog{questions: qs, index: index}, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.questions)
}

// At returns the question at position i in the sorted catalog.
func (c *Catalog) At(i int) (Question, bool) {
	if c == nil || i < 0 || i >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[i], true
}

// IndexOf returns the position of the question numbered no.
func (c *Catalog) IndexOf(no int) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[no]
	return i, ok
}

// Lookup returns the question numbered no.
func (c *Catalog) Lookup(no int) (Question, bool) {
	i, ok := c.IndexOf(no)
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Questions returns a copy of the sorted question list.
func (c *Catalog) Questions() []Question {
	if c == nil {
		return nil
	}
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}
