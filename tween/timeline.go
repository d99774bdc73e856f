// Package tween provides a single-threaded virtual timeline that runs reveal
// tweens and timers for a handwrite.Player.
//
// Nothing happens on its own: the owner calls Advance with elapsed time,
// from a time.Ticker in an application or directly in tests. Callbacks run
// synchronously inside Advance, one at a time, in due-time order.
package tween

import (
	"time"

	"github.com/gogpu/handwrite"
)

// Timeline is a virtual clock with scheduled tweens and timers.
// It implements handwrite.Scheduler.
//
// Timeline is not safe for concurrent use.
type Timeline struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

// task is a scheduled tween or timer.
type task struct {
	seq   uint64
	start time.Duration
	due   time.Duration
	fn    func()

	// Set for tweens only.
	target   handwrite.Drawable
	from, to float64
	ease     EaseFunc

	done bool
}

// NewTimeline creates a timeline at time zero.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Now returns the current virtual time.
func (tl *Timeline) Now() time.Duration { return tl.now }

// Pending returns the number of scheduled tweens and timers.
func (tl *Timeline) Pending() int { return len(tl.tasks) }

// Animate starts a tween: the target is set to a.From and a.OnBegin runs
// immediately; the target then follows the easing curve to a.To and
// a.OnComplete runs once the duration has elapsed.
func (tl *Timeline) Animate(a handwrite.Animation) handwrite.Handle {
	t := &task{
		start:  tl.now,
		due:    tl.now + max(a.Duration, 0),
		fn:     a.OnComplete,
		target: a.Target,
		from:   a.From,
		to:     a.To,
		ease:   Ease(a.Easing),
	}
	if t.target != nil {
		t.target.SetRevealFraction(a.From)
	}
	if a.OnBegin != nil {
		a.OnBegin()
	}
	tl.schedule(t)
	return &handle{tl: tl, t: t}
}

// After schedules fn to run once d has elapsed.
func (tl *Timeline) After(d time.Duration, fn func()) handwrite.Handle {
	t := &task{start: tl.now, due: tl.now + max(d, 0), fn: fn}
	tl.schedule(t)
	return &handle{tl: tl, t: t}
}

func (tl *Timeline) schedule(t *task) {
	tl.seq++
	t.seq = tl.seq
	tl.tasks = append(tl.tasks, t)
}

// Advance moves the clock forward by d, completing every task that falls due
// on the way in due-time order. Tasks scheduled by callbacks run in the same
// call if they fall due before the new time. Running tweens are then updated
// to the new time. Advance reports whether any task is still pending.
func (tl *Timeline) Advance(d time.Duration) bool {
	target := tl.now + max(d, 0)

	for {
		t := tl.nextDue(target)
		if t == nil {
			break
		}
		tl.now = t.due
		tl.remove(t)
		t.done = true
		if t.target != nil {
			t.target.SetRevealFraction(t.to)
		}
		if t.fn != nil {
			t.fn()
		}
	}

	tl.now = target
	for _, t := range tl.tasks {
		if t.target != nil {
			t.target.SetRevealFraction(t.fraction(tl.now))
		}
	}
	return len(tl.tasks) > 0
}

// Drain advances until nothing is pending or limit has elapsed, in steps of
// step, and returns the time spent.
func (tl *Timeline) Drain(step, limit time.Duration) time.Duration {
	if step <= 0 {
		step = time.Millisecond
	}
	begin := tl.now
	for len(tl.tasks) > 0 && tl.now-begin < limit {
		tl.Advance(step)
	}
	return tl.now - begin
}

// nextDue returns the earliest task due at or before limit.
func (tl *Timeline) nextDue(limit time.Duration) *task {
	var best *task
	for _, t := range tl.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (tl *Timeline) remove(t *task) {
	for i, x := range tl.tasks {
		if x == t {
			tl.tasks = append(tl.tasks[:i], tl.tasks[i+1:]...)
			return
		}
	}
}

// fraction returns the eased reveal fraction of a tween at time now.
func (t *task) fraction(now time.Duration) float64 {
	span := t.due - t.start
	if span <= 0 {
		return t.to
	}
	p := float64(now-t.start) / float64(span)
	p = max(0, min(p, 1))
	return t.from + (t.to-t.from)*t.ease(p)
}

// handle implements handwrite.Handle.
type handle struct {
	tl *Timeline
	t  *task
}

// Pause removes the task. A tween keeps the fraction it last rendered.
func (h *handle) Pause() {
	if h.t.done {
		return
	}
	h.t.done = true
	h.tl.remove(h.t)
}
