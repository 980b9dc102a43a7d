package quiz

import (
	"testing"

	"github.com/abhisek/quizcard/internal/catalog"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		answered []string
		correct  []string
		want     Status
	}{
		{"nil answer", nil, []string{"A"}, StatusUnanswered},
		{"empty answer", []string{}, []string{"A"}, StatusUnanswered},
		{"exact single", []string{"A"}, []string{"A"}, StatusExact},
		{"exact reordered", []string{"A", "B"}, []string{"B", "A"}, StatusExact},
		{"exact with duplicates", []string{"B", "A", "B"}, []string{"A", "B"}, StatusExact},
		{"partial superset", []string{"A", "B", "C"}, []string{"A", "B"}, StatusPartial},
		{"partial subset", []string{"A"}, []string{"A", "B"}, StatusPartial},
		{"partial overlap", []string{"A", "B"}, []string{"B", "C"}, StatusPartial},
		{"none", []string{"D"}, []string{"A", "B"}, StatusNone},
		{"none empty correct", []string{"D"}, nil, StatusNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.answered, tt.correct); got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.answered, tt.correct, got, tt.want)
			}
		})
	}
}

func TestClassify_SymmetricUnderReordering(t *testing.T) {
	a := Classify([]string{"A", "B", "C"}, []string{"C", "D"})
	b := Classify([]string{"C", "B", "A"}, []string{"D", "C"})
	if a != b {
		t.Errorf("reordering changed status: %v vs %v", a, b)
	}
}

func TestStatusString(t *testing.T) {
	want := map[Status]string{
		StatusUnanswered: "unanswered",
		StatusExact:      "exact",
		StatusPartial:    "partial",
		StatusNone:       "none",
	}
	for s, w := range want {
		if s.String() != w {
			t.Errorf("Status(%d).String() = %q, want %q", s, s.String(), w)
		}
	}
}

func TestIsComplete(t *testing.T) {
	q := catalog.Question{No: 1, Choose: 2, Best: []string{"B", "C"}}
	l := NewLedger()

	if IsComplete(l, q) {
		t.Error("empty selection must not be complete")
	}

	l = Toggle(l, 1, "A", q.Choose)
	if IsComplete(l, q) {
		t.Error("1 of 2 selections must not be complete")
	}

	l = Toggle(l, 1, "B", q.Choose)
	if !IsComplete(l, q) {
		t.Error("2 of 2 selections must be complete")
	}

	l = Toggle(l, 1, "A", q.Choose)
	if IsComplete(l, q) {
		t.Error("toggling off after completion must hide the answer again")
	}
}

func TestIsComplete_ExactThresholdOnly(t *testing.T) {
	q := catalog.Question{No: 1, Choose: 2}
	l := Ledger{Answered: map[int][]string{1: {"A", "B", "C"}}}
	if IsComplete(l, q) {
		t.Error("a selection above Choose is not complete")
	}
}
