package handwrite

import "time"

// Drawable is the rendering surface's handle on one segment.
type Drawable interface {
	// SetRevealFraction renders the segment revealed to f in [0, 1].
	SetRevealFraction(f float64)

	// RevealFraction returns the fraction currently rendered.
	RevealFraction() float64

	// TotalLength returns the stroke length of the segment.
	TotalLength() float64
}

// Surface creates drawables for a layout. Bind replaces any previously bound
// drawables and returns one drawable per segment, in segment order.
type Surface interface {
	Bind(layout Layout) []Drawable
}

// Animation describes one reveal tween.
type Animation struct {
	// Target receives the eased reveal fraction.
	Target Drawable

	// From and To are the reveal fractions at the start and end of the tween.
	From, To float64

	// Duration is the tween length.
	Duration time.Duration

	// Easing names the easing curve, e.g. "easeInOutSine".
	Easing string

	// OnBegin is called when the tween starts. May be nil.
	OnBegin func()

	// OnComplete is called exactly once, asynchronously, no sooner than
	// Duration after the tween starts, unless the tween is paused first.
	OnComplete func()
}

// Handle controls a scheduled tween or timer.
type Handle interface {
	// Pause suspends the work. A paused tween leaves its target at the
	// current fraction and never completes; a paused timer never fires.
	Pause()
}

// Scheduler runs tweens and timers on a single logical timeline.
// Callbacks are never invoked from within Animate or After.
type Scheduler interface {
	Animate(a Animation) Handle
	After(d time.Duration, fn func()) Handle
}
