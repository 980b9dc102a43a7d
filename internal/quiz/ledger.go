// Package quiz holds the quiz progress state machine: the answer ledger,
// option selection, reveal gating, correctness classification and
// navigation. Everything here except Controller is pure.
package quiz

// Ledger records the user's selections per question and the last viewed
// position in the sorted catalog.
type Ledger struct {
	// Answered maps question No to its selected option keys, most recent last.
	// A question's selection never holds more than its Choose entries.
	Answered map[int][]string

	// LastIndex is the last viewed position in the sorted catalog.
	LastIndex int
}

// NewLedger returns the default empty ledger.
func NewLedger() Ledger {
	return Ledger{Answered: map[int][]string{}}
}

// Selection returns a copy of the selection for question no, or nil.
func (l Ledger) Selection(no int) []string {
	sel, ok := l.Answered[no]
	if !ok {
		return nil
	}
	return append([]string(nil), sel...)
}

// Clone returns a deep copy of the ledger.
func (l Ledger) Clone() Ledger {
	answered := make(map[int][]string, len(l.Answered))
	for no, sel := range l.Answered {
		answered[no] = append(make([]string, 0, len(sel)), sel...)
	}
	return Ledger{Answered: answered, LastIndex: l.LastIndex}
}

// withSelection returns a copy of l with question no's selection replaced.
func (l Ledger) withSelection(no int, sel []string) Ledger {
	next := l.Clone()
	next.Answered[no] = sel
	return next
}
