package tween

import (
	"math"
	"sort"
)

// EaseFunc maps linear time t in [0, 1] to eased progress.
type EaseFunc func(t float64) float64

// easings holds the named curves, using the names common to web tween engines.
var easings = map[string]EaseFunc{
	"linear":         func(t float64) float64 { return t },
	"easeInSine":     func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	"easeOutSine":    func(t float64) float64 { return math.Sin(t * math.Pi / 2) },
	"easeInOutSine":  func(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 },
	"easeInQuad":     func(t float64) float64 { return t * t },
	"easeOutQuad":    func(t float64) float64 { return 1 - (1-t)*(1-t) },
	"easeInOutQuad":  easeInOutQuad,
	"easeInOutCubic": easeInOutCubic,
}

func easeInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Ease returns the named easing curve. Unknown names fall back to linear.
func Ease(name string) EaseFunc {
	if f, ok := easings[name]; ok {
		return f
	}
	return easings["linear"]
}

// Known reports whether name is a registered easing curve.
func Known(name string) bool {
	_, ok := easings[name]
	return ok
}

// Names returns the registered easing names in sorted order.
func Names() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
