package handwrite

// engine is the playback state machine. It reveals one segment at a time
// through the Scheduler and owns the position, state and speed.
//
// Every transition cancels in-flight work synchronously before mutating
// state. Callbacks carry the generation they were scheduled under and are
// discarded when a later transition has bumped it, so a stale completion can
// never advance the position.
type engine struct {
	sched  Scheduler
	surf   Surface
	timing Timing
	hooks  Hooks

	layout    Layout
	drawables []Drawable

	state State
	pos   Position
	// partial is the reveal fraction of the segment at pos.Index as of the
	// last decision point.
	partial float64
	speed   Speed

	inflight Handle
	resuming bool
	gen      uint64
}

func (e *engine) n() int { return len(e.drawables) }

// load replaces the segment model and resets to the first segment, stopped,
// with every segment hidden. The speed is kept; a later Play in reverse
// redirects from there.
func (e *engine) load(layout Layout) {
	e.cancel()
	e.layout = layout
	e.drawables = e.bind(layout)
	e.pos, e.partial = positionAt(0, Forward)
	e.render(0, 0)
	e.setState(Stopped)
	e.emitProgress()
}

// bind obtains drawables from the surface, falling back to headless ones so
// that the engine always has exactly one drawable per segment.
func (e *engine) bind(layout Layout) []Drawable {
	var ds []Drawable
	if e.surf != nil {
		ds = e.surf.Bind(layout)
	}
	n := layout.Len()
	if len(ds) > n {
		ds = ds[:n]
	}
	for i := len(ds); i < n; i++ {
		ds = append(ds, &headless{length: layout.Segments[i].OutlineLength})
	}
	return ds
}

// cancel suspends whatever tween or timer is in flight and invalidates
// callbacks scheduled before this point.
func (e *engine) cancel() {
	if e.inflight != nil {
		e.inflight.Pause()
		e.inflight = nil
	}
	e.resuming = false
	e.gen++
}

func (e *engine) setState(s State) {
	if s == e.state {
		return
	}
	e.state = s
	if e.hooks.State != nil {
		e.hooks.State(s)
	}
}

func (e *engine) progress() int {
	return ToPermille(e.pos.Index, e.partial, e.n())
}

func (e *engine) emitProgress() {
	if e.hooks.Progress != nil {
		e.hooks.Progress(e.progress())
	}
}

// render reveals segments below revealed, shows the segment at revealed at
// partial and hides the rest.
func (e *engine) render(revealed int, partial float64) {
	for i, d := range e.drawables {
		switch {
		case i < revealed:
			d.SetRevealFraction(1)
		case i == revealed:
			d.SetRevealFraction(partial)
		default:
			d.SetRevealFraction(0)
		}
	}
}

// settle moves to the resting position with the given number of fully
// revealed segments in the active direction and renders it.
func (e *engine) settle(revealed int) {
	e.pos, e.partial = positionAt(revealed, e.speed.Active())
	e.render(revealed, 0)
}

func (e *engine) play() {
	if e.state == Playing {
		return
	}
	n := e.n()
	if n == 0 {
		return
	}
	e.cancel()

	if e.pos.Direction != e.speed.Active() {
		e.redirect()
	}
	if e.pos.Terminal(n) {
		dir := e.speed.Active()
		e.pos, e.partial = startOf(dir, n)
		if dir == Reverse {
			e.render(n, 0)
		} else {
			e.render(0, 0)
		}
		e.emitProgress()
	}

	e.setState(Playing)
	e.reveal()
}

// reveal starts the tween for the current segment. The tween restarts from
// the segment's unrevealed end: resume granularity is one segment.
func (e *engine) reveal() {
	i := e.pos.Index
	from, to := 0.0, 1.0
	if e.pos.Direction == Reverse {
		from, to = 1, 0
	}

	gen := e.gen
	d := e.timing.Duration(e.speed.Effective())
	Logger().Debug("handwrite: reveal segment",
		"index", i, "direction", e.pos.Direction, "duration", d)

	e.inflight = e.sched.Animate(Animation{
		Target:     e.drawables[i],
		From:       from,
		To:         to,
		Duration:   d,
		Easing:     e.timing.Easing,
		OnComplete: func() { e.completed(gen, i) },
	})
}

// completed is the single transition taken when the reveal of segment i
// finishes.
func (e *engine) completed(gen uint64, i int) {
	if gen != e.gen || e.state != Playing || e.pos.Index != i {
		return
	}
	e.inflight = nil

	dir := e.pos.Direction
	if dir == Reverse {
		e.drawables[e.pos.Index].SetRevealFraction(0)
	} else {
		e.drawables[e.pos.Index].SetRevealFraction(1)
	}

	e.pos.Index += dir.step()
	e.partial = 0
	if dir == Reverse && e.pos.Index >= 0 {
		e.partial = 1
	}
	e.emitProgress()

	if e.pos.Terminal(e.n()) {
		e.finish()
		return
	}
	e.inflight = e.sched.After(e.timing.StepDelay, func() { e.next(gen) })
}

func (e *engine) next(gen uint64) {
	if gen != e.gen || e.state != Playing {
		return
	}
	e.inflight = nil
	e.reveal()
}

// finish pulls the position to a valid boundary, resets the speed and stops.
func (e *engine) finish() {
	e.inflight = nil
	dir := e.pos.Direction
	e.speed.Reset()
	if dir == Reverse {
		e.pos, e.partial = positionAt(0, Forward)
	} else {
		e.pos, e.partial = Position{Index: e.n(), Direction: Forward}, 0
	}
	e.setState(Stopped)

	Logger().Info("handwrite: playback finished",
		"direction", dir, "segments", e.n())
	if e.hooks.Finished != nil {
		e.hooks.Finished()
	}
}

// pause suspends playback. The in-flight reveal keeps its current fraction.
// Pending resumes are cancelled in every state.
func (e *engine) pause() {
	e.cancel()
	if e.state != Playing {
		return
	}
	if i := e.pos.Index; i >= 0 && i < e.n() {
		e.partial = e.drawables[i].RevealFraction()
	}
	e.setState(Paused)
	e.emitProgress()
}

func (e *engine) stop() {
	e.cancel()
	e.speed.Reset()
	e.pos, e.partial = positionAt(0, Forward)
	e.render(0, 0)
	e.setState(Stopped)
	e.emitProgress()
}

// step moves exactly one segment forward (delta 1) or back (delta -1).
// Steps past either boundary are no-ops.
func (e *engine) step(delta int) {
	n := e.n()
	if n == 0 {
		return
	}
	partial := e.partial
	if i := e.pos.Index; e.state == Playing && i >= 0 && i < n {
		partial = e.drawables[i].RevealFraction()
	}
	target := e.pos.revealed(partial) + delta
	if target < 0 || target > n {
		return
	}
	e.pause()
	e.settle(target)
	e.emitProgress()
}

func (e *engine) seek(v int) {
	n := e.n()
	if n == 0 {
		return
	}
	e.pause()

	idx, partial := FromPermille(v, n)
	e.render(idx, partial)

	dir := e.speed.Active()
	switch {
	case dir == Forward:
		e.pos, e.partial = Position{Index: idx, Direction: Forward}, partial
	case partial > 0:
		e.pos, e.partial = Position{Index: idx, Direction: Reverse}, partial
	default:
		e.pos, e.partial = positionAt(idx, Reverse)
	}
	e.emitProgress()
}

func (e *engine) changeSpeed(dir Direction) {
	wasPlaying := e.state == Playing || e.resuming
	e.pause()

	prev := e.speed.Active()
	e.speed.Cycle(dir)
	if prev != dir {
		e.redirect()
		e.emitProgress()
	}
	Logger().Debug("handwrite: speed changed", "speed", e.speed.Label())

	if wasPlaying {
		e.resumeAfterGrace()
	}
}

// rewind returns to the start of the active direction. Playback that was
// running restarts after the grace delay.
func (e *engine) rewind() {
	n := e.n()
	if n == 0 {
		return
	}
	wasPlaying := e.state == Playing || e.resuming
	e.pause()
	e.settleStart()
	e.emitProgress()

	if wasPlaying {
		e.resumeAfterGrace()
	}
}

// replay rewinds a completed run and starts it again after the grace delay.
func (e *engine) replay() {
	if e.n() == 0 {
		return
	}
	e.cancel()
	e.settleStart()
	e.emitProgress()
	e.resumeAfterGrace()
}

// settleStart moves to the start of the active direction.
func (e *engine) settleStart() {
	if e.speed.Active() == Reverse {
		e.settle(e.n())
	} else {
		e.settle(0)
	}
}

func (e *engine) resumeAfterGrace() {
	gen := e.gen
	e.resuming = true
	e.inflight = e.sched.After(e.timing.GraceDelay, func() {
		if gen != e.gen {
			return
		}
		e.inflight = nil
		e.resuming = false
		if e.state != Playing {
			e.play()
		}
	})
}

// redirect converts the position to the active direction. A partially drawn
// forward segment is dropped; a partially un-drawn reverse segment is restored.
func (e *engine) redirect() {
	revealed := e.pos.Index
	if e.pos.Direction == Reverse {
		revealed = e.pos.Index + 1
	}
	e.settle(max(0, min(revealed, e.n())))
}

// headless is the drawable used when no surface is attached.
type headless struct {
	length   float64
	fraction float64
}

func (h *headless) SetRevealFraction(f float64) { h.fraction = max(0, min(f, 1)) }
func (h *headless) RevealFraction() float64     { return h.fraction }
func (h *headless) TotalLength() float64        { return h.length }
