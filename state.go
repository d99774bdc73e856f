package handwrite

// State is the playback state of a Player.
type State uint8

const (
	// Stopped is the initial and terminal state.
	Stopped State = iota

	// Playing means a segment reveal is in flight or scheduled.
	Playing

	// Paused means playback is suspended mid-sequence.
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Direction is the playback direction.
type Direction int8

const (
	// Forward reveals segments in text order.
	Forward Direction = iota

	// Reverse un-draws segments from the last revealed one.
	Reverse
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// step returns +1 for Forward and -1 for Reverse.
func (d Direction) step() int {
	if d == Reverse {
		return -1
	}
	return 1
}

// Position is the current segment of playback.
//
// Under Forward, Index ranges over [0, n] where n means fully drawn.
// Under Reverse, Index ranges over [-1, n-1] where -1 means fully rewound.
// In both directions segments below Index are fully revealed and the
// segment at Index is the one being drawn or un-drawn.
type Position struct {
	Index     int
	Direction Direction
}

// positionAt returns the resting position for the given number of fully
// revealed segments, together with the reveal fraction of the current segment.
func positionAt(revealed int, dir Direction) (Position, float64) {
	if dir == Reverse {
		if revealed <= 0 {
			return Position{Index: -1, Direction: Reverse}, 0
		}
		return Position{Index: revealed - 1, Direction: Reverse}, 1
	}
	return Position{Index: revealed, Direction: Forward}, 0
}

// startOf returns the resting position a run in dir begins from.
func startOf(dir Direction, n int) (Position, float64) {
	if dir == Reverse {
		return positionAt(n, Reverse)
	}
	return positionAt(0, Forward)
}

// Terminal reports whether the position is at the end boundary for its
// direction with n segments.
func (p Position) Terminal(n int) bool {
	if p.Direction == Reverse {
		return p.Index < 0
	}
	return p.Index >= n
}

// revealed returns the number of fully revealed segments for a current
// segment at the given reveal fraction.
func (p Position) revealed(fraction float64) int {
	if p.Index < 0 {
		return 0
	}
	if fraction >= 1 {
		return p.Index + 1
	}
	return p.Index
}
