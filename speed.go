package handwrite

import "strconv"

// speedLadder is the sequence of multipliers a direction cycles through.
var speedLadder = [...]int{1, 2, 4, 8}

// Speed owns the forward and reverse multipliers and the active direction.
// Only one direction can be boosted at a time: cycling one axis resets the
// other to 1.
//
// The zero value is not ready to use; call NewSpeed.
type Speed struct {
	forward int
	reverse int
	active  Direction
}

// NewSpeed returns a Speed at 1x forward.
func NewSpeed() Speed {
	return Speed{forward: 1, reverse: 1, active: Forward}
}

// Cycle advances dir's multiplier along 1, 2, 4, 8 (wrapping to 1), forces
// the other direction's multiplier to 1 and makes dir active.
func (s *Speed) Cycle(dir Direction) {
	if dir == Reverse {
		s.reverse = nextRung(s.reverse)
		s.forward = 1
	} else {
		s.forward = nextRung(s.forward)
		s.reverse = 1
	}
	s.active = dir
}

// Reset returns both multipliers to 1 and the direction to Forward.
func (s *Speed) Reset() {
	*s = NewSpeed()
}

// Effective returns the signed multiplier: positive under Forward,
// negative under Reverse.
func (s Speed) Effective() int {
	if s.active == Reverse {
		return -s.reverse
	}
	return s.forward
}

// Forward returns the forward multiplier.
func (s Speed) Forward() int { return s.forward }

// Reverse returns the reverse multiplier.
func (s Speed) Reverse() int { return s.reverse }

// Active returns the active direction.
func (s Speed) Active() Direction { return s.active }

// Label returns the speed echo shown to the user, e.g. "2x" or "-4x".
func (s Speed) Label() string {
	return strconv.Itoa(s.Effective()) + "x"
}

func nextRung(m int) int {
	for i, r := range speedLadder {
		if r == m && i+1 < len(speedLadder) {
			return speedLadder[i+1]
		}
	}
	return speedLadder[0]
}
