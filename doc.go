// Package handwrite animates handwriting: it decomposes a text into one
// stroke segment per character and reveals the segments one after another
// under transport control (play, pause, stop, seek, step, speed, direction).
//
// # Overview
//
// The package is the playback core. Its collaborators are interfaces:
//
//   - FontProvider / FontResolver: glyph outlines per character (see glyph/)
//   - Surface / Drawable: per-segment reveal rendering (see surface/)
//   - Scheduler: tweens and timers on one logical timeline (see tween/)
//
// # Quick Start
//
//	tl := tween.NewTimeline()
//	canvas := surface.NewCanvas(surface.DefaultOptions())
//	lib := glyph.NewLibrary()
//	lib.Add("Go", glyph.Default())
//
//	p := handwrite.NewPlayer(tl, canvas, lib)
//	p.SetFont("Go")
//	p.SetText("Hello")
//	p.Play()
//
//	for tl.Advance(16 * time.Millisecond) {
//	    fmt.Println(p.Progress())
//	}
//
// # Progress Model
//
// Progress is a permille value in [0, 1000], computed from the current
// segment index, the reveal fraction of that segment and the segment count.
// It is never stored. Seek resolves a permille value back to a segment and
// a partial fraction; the permille of any segment boundary resolves back to
// that segment.
//
// # Speed
//
// Forward and reverse multipliers cycle through 1, 2, 4, 8. Boosting one
// direction resets the other to 1. A reveal lasts base/|speed|, clamped to
// [min, max].
//
// # Concurrency
//
// Everything runs on one logical thread. A Player must be driven from the
// goroutine that advances its Scheduler; callbacks fire only inside the
// scheduler's Advance and never re-enter a transition.
package handwrite
