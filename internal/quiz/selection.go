package quiz

// Toggle flips option key in question no's selection and returns the new
// ledger. An already selected key is removed. A new key is appended and the
// selection is cut back to the requiredCount most recent picks, so picking
// one option too many silently drops the oldest pick. With requiredCount 1
// every pick replaces the previous one.
//
// Keys are opaque: nothing checks them against the question's options.
// A requiredCount below 1 behaves as 1.
func Toggle(l Ledger, no int, key string, requiredCount int) Ledger {
	if requiredCount < 1 {
		requiredCount = 1
	}

	current := l.Answered[no]
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, k := range current {
		if k == key {
			removed = true
			continue
		}
		next = append(next, k)
	}

	if !removed {
		next = append(next, key)
		if over := len(next) - requiredCount; over > 0 {
			next = next[over:]
		}
	}

	return l.withSelection(no, next)
}

// window keeps the last n entries of sel. Used to bring a restored
// selection back within a question's bound.
func window(sel []string, n int) []string {
	if n < 1 {
		n = 1
	}
	if len(sel) <= n {
		return sel
	}
	return append([]string(nil), sel[len(sel)-n:]...)
}
