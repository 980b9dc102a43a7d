package quiz

// Direction records which way the last move went. It is presentation-only:
// no navigation decision reads it.
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrev
)

func (d Direction) String() string {
	if d == DirectionPrev {
		return "prev"
	}
	return "next"
}

// Navigate moves from current to target within a catalog of length
// questions. A target outside [0, length) leaves both index and direction
// unchanged.
func Navigate(current, target, length int, dir Direction) (int, Direction) {
	if target < 0 || target >= length {
		return current, dir
	}
	if target > current {
		return target, DirectionNext
	}
	return target, DirectionPrev
}

// Advance moves one question forward.
func Advance(current, length int, dir Direction) (int, Direction) {
	return Navigate(current, current+1, length, dir)
}

// Retreat moves one question back.
func Retreat(current, length int, dir Direction) (int, Direction) {
	return Navigate(current, current-1, length, dir)
}

// JumpTo moves directly to index.
func JumpTo(current, index, length int, dir Direction) (int, Direction) {
	return Navigate(current, index, length, dir)
}
