package handwrite

import "math"

// PermilleMax is the progress value of a fully drawn sequence.
const PermilleMax = 1000

// segmentStart returns the permille at which segment i of n begins.
func segmentStart(i, n int) int {
	return i * PermilleMax / n
}

// ToPermille converts a position to overall progress in [0, 1000].
//
// index is the current segment, partial the reveal fraction of that segment
// and n the number of segments. The result is floor(index/n*1000), moved
// toward the next segment's start by partial. It is 0 when n is 0.
func ToPermille(index int, partial float64, n int) int {
	if n <= 0 || index < 0 {
		return 0
	}
	if index >= n {
		return PermilleMax
	}

	p := segmentStart(index, n)
	if partial > 0 {
		span := segmentStart(index+1, n) - p
		p += int(math.Floor(math.Min(partial, 1) * float64(span)))
	}
	return min(p, PermilleMax)
}

// FromPermille resolves a progress value to a segment index in [0, n] and the
// partial fraction of that segment in [0, 1).
//
// v is clamped to [0, 1000]. The index is the last segment whose start is at
// or below v, which is floor(v/1000*n) corrected for integer rounding: the
// permille of any segment start resolves back to that segment for n <= 1000.
func FromPermille(v, n int) (index int, partial float64) {
	if n <= 0 {
		return 0, 0
	}
	v = max(0, min(v, PermilleMax))

	index = v * n / PermilleMax
	for index < n && segmentStart(index+1, n) <= v {
		index++
	}
	if index >= n {
		return n, 0
	}

	start, next := segmentStart(index, n), segmentStart(index+1, n)
	if next > start {
		partial = float64(v-start) / float64(next-start)
	}
	return index, partial
}
