package daterange

import "time"

// Overlaps reports whether the closed ranges [startA, endA] and
// [startB, endB] intersect. Touching endpoints count as overlapping.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return !startA.After(endB) && !endA.Before(startB)
}

// Days returns the inclusive day count of [start, end].
// Days(d, d) == 1.
func Days(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
