package quiz

import "github.com/abhisek/quizcard/internal/catalog"

// Status is the four-way correctness bucket used to colour the answer card.
type Status int

const (
	StatusUnanswered Status = iota // nothing selected
	StatusExact                    // selection equals the correct set
	StatusPartial                  // overlaps the correct set
	StatusNone                     // answered, no overlap
)

func (s Status) String() string {
	switch s {
	case StatusExact:
		return "exact"
	case StatusPartial:
		return "partial"
	case StatusNone:
		return "none"
	default:
		return "unanswered"
	}
}

// IsComplete reports whether q's selection has reached exactly q.Choose
// entries. This gates the reveal; toggling an option off afterwards hides
// the answer again.
func IsComplete(l Ledger, q catalog.Question) bool {
	return len(l.Answered[q.No]) == q.Choose
}

// Classify compares answered against correct as sets. Order and duplicates
// are ignored. It does not depend on completion: an in-progress answer can
// already be partial.
func Classify(answered, correct []string) Status {
	if len(answered) == 0 {
		return StatusUnanswered
	}

	answeredSet := toSet(answered)
	correctSet := toSet(correct)

	overlap := 0
	for k := range answeredSet {
		if _, ok := correctSet[k]; ok {
			overlap++
		}
	}

	switch {
	case overlap == len(answeredSet) && len(answeredSet) == len(correctSet):
		return StatusExact
	case overlap > 0:
		return StatusPartial
	default:
		return StatusNone
	}
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
