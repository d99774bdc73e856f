package handwrite

import "time"

// Default timings.
const (
	DefaultBaseDuration = 800 * time.Millisecond
	DefaultMinDuration  = 50 * time.Millisecond
	DefaultMaxDuration  = 5 * time.Second

	// DefaultStepDelay is the pause between consecutive segment reveals.
	DefaultStepDelay = 50 * time.Millisecond

	// DefaultGraceDelay is the wait before playback restarts after a speed
	// change or rewind.
	DefaultGraceDelay = 100 * time.Millisecond

	// DefaultEasing is the easing curve used for reveals.
	DefaultEasing = "easeInOutSine"

	// DefaultFontSize is the font size in pixels per em.
	DefaultFontSize = 100

	// MaxFontSize is the largest accepted font size. Glyph coordinates must
	// fit 26.6 fixed point.
	MaxFontSize = 1 << 20
)

// ValidFontSize reports whether size is a usable font size: positive,
// finite and at most MaxFontSize.
func ValidFontSize(size float64) bool {
	return size > 0 && size <= MaxFontSize
}

// ReverseScaling selects how the reverse multiplier scales the base duration.
type ReverseScaling uint8

const (
	// ReverseDivide shortens reverse reveals like forward ones: base / multiplier.
	ReverseDivide ReverseScaling = iota

	// ReverseMultiply lengthens reverse reveals: base * multiplier.
	ReverseMultiply
)

// Timing holds the durations that drive playback.
type Timing struct {
	Base, Min, Max time.Duration
	StepDelay      time.Duration
	GraceDelay     time.Duration
	Easing         string
	ReverseScaling ReverseScaling
}

// DefaultTiming returns the default playback timing.
func DefaultTiming() Timing {
	return Timing{
		Base:       DefaultBaseDuration,
		Min:        DefaultMinDuration,
		Max:        DefaultMaxDuration,
		StepDelay:  DefaultStepDelay,
		GraceDelay: DefaultGraceDelay,
		Easing:     DefaultEasing,
	}
}

// Duration returns the reveal duration for a signed speed multiplier,
// clamped to [Min, Max].
func (t Timing) Duration(speed int) time.Duration {
	mag := time.Duration(max(speed, -speed, 1))

	d := t.Base / mag
	if speed < 0 && t.ReverseScaling == ReverseMultiply {
		d = t.Base * mag
	}

	if t.Max > 0 && d > t.Max {
		d = t.Max
	}
	if d < t.Min {
		d = t.Min
	}
	return d
}

// Hooks receive the outputs of a Player. Any field may be nil.
// Hooks run on the scheduler's thread and must not call back into the Player.
type Hooks struct {
	// Progress receives the permille progress whenever it is recomputed.
	Progress func(permille int)

	// State receives every state transition.
	State func(s State)

	// Finished is called when playback reaches the end for its direction.
	Finished func()
}

// Option configures a Player during creation.
//
// Example:
//
//	p := handwrite.NewPlayer(timeline, canvas, library,
//	    handwrite.WithBaseDuration(600*time.Millisecond),
//	    handwrite.WithLetterSpacing(15),
//	)
type Option func(*options)

// options holds optional configuration for Player creation.
type options struct {
	timing   Timing
	layout   LayoutOptions
	fontSize float64
	hooks    Hooks
}

// defaultOptions returns the default player options.
func defaultOptions() options {
	return options{
		timing:   DefaultTiming(),
		fontSize: DefaultFontSize,
	}
}

// WithTiming replaces the whole playback timing.
func WithTiming(t Timing) Option {
	return func(o *options) {
		o.timing = t
	}
}

// WithBaseDuration sets the 1x reveal duration of one segment.
func WithBaseDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timing.Base = d
		}
	}
}

// WithDurationBounds clamps reveal durations to [lo, hi].
func WithDurationBounds(lo, hi time.Duration) Option {
	return func(o *options) {
		if lo >= 0 && hi >= lo {
			o.timing.Min, o.timing.Max = lo, hi
		}
	}
}

// WithStepDelay sets the pause between consecutive segment reveals.
func WithStepDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.timing.StepDelay = d
		}
	}
}

// WithGraceDelay sets the wait before playback restarts after a speed change.
func WithGraceDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.timing.GraceDelay = d
		}
	}
}

// WithEasing sets the easing curve name passed to the scheduler.
func WithEasing(name string) Option {
	return func(o *options) {
		o.timing.Easing = name
	}
}

// WithReverseScaling selects how reverse multipliers scale reveal durations.
func WithReverseScaling(r ReverseScaling) Option {
	return func(o *options) {
		o.timing.ReverseScaling = r
	}
}

// WithLayout sets pen placement used when building segments.
func WithLayout(l LayoutOptions) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithLetterSpacing sets the spacing added after every glyph.
func WithLetterSpacing(s float64) Option {
	return func(o *options) {
		o.layout.LetterSpacing = s
	}
}

// WithFontSize sets the initial font size in pixels per em. Sizes rejected
// by ValidFontSize are ignored.
func WithFontSize(size float64) Option {
	return func(o *options) {
		if ValidFontSize(size) {
			o.fontSize = size
		}
	}
}

// WithHooks installs output callbacks.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}
