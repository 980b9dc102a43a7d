package quiz

import "github.com/abhisek/quizcard/internal/catalog"

// Summary aggregates classification over a catalog.
type Summary struct {
	Total      int
	Unanswered int
	Exact      int
	Partial    int
	None       int
	Revealed   int // questions whose selection reached Choose
}

// Answered returns the number of questions with at least one selection.
func (s Summary) Answered() int {
	return s.Total - s.Unanswered
}

// Fraction returns n as a share of Total, or 0 for an empty catalog.
func (s Summary) Fraction(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total)
}

// Summarize classifies every question in cat against l. Ledger entries for
// questions not in the catalog are ignored.
func Summarize(cat *catalog.Catalog, l Ledger) Summary {
	var s Summary
	for _, q := range cat.Questions() {
		s.Total++
		switch Classify(l.Answered[q.No], q.Best) {
		case StatusExact:
			s.Exact++
		case StatusPartial:
			s.Partial++
		case StatusNone:
			s.None++
		default:
			s.Unanswered++
		}
		if IsComplete(l, q) {
			s.Revealed++
		}
	}
	return s
}
