package handwrite

import (
	"math"
	"strings"
)

// Play/pause glyph states echoed to the UI.
const (
	GlyphPlay   = "play"
	GlyphPause  = "pause"
	GlyphReplay = "replay"
)

// Snapshot is the state a UI renders: progress indicator, transport glyph,
// speed label and fallback notice.
type Snapshot struct {
	State      State
	Position   Position
	Segments   int
	Progress   int
	Forward    int
	Reverse    int
	Direction  Direction
	SpeedLabel string
	Glyph      string
	Notice     Notice
	Font       string
	Text       string
}

// Player is the transport surface: the operations a UI invokes to drive
// handwriting playback.
//
// A Player owns all playback state. It is not safe for concurrent use; call
// it from the same goroutine that advances the Scheduler. No method returns
// an error or panics on bad input: failures are reported through
// Snapshot.Notice and an empty segment model.
type Player struct {
	e engine

	fonts    FontResolver
	font     FontProvider
	fontName string
	fontSize float64
	layout   LayoutOptions
	text     string
	notice   Notice
}

// NewPlayer creates a stopped player with no text.
//
// sched drives reveals and must not be nil. surf renders segments; when nil,
// reveal fractions are tracked without rendering. fonts resolves font names
// and is asked for its default font (the empty name) up front; when nil every
// font is unavailable.
func NewPlayer(sched Scheduler, surf Surface, fonts FontResolver, opts ...Option) *Player {
	if sched == nil {
		panic("handwrite: NewPlayer requires a Scheduler")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Player{
		fonts:    fonts,
		fontSize: o.fontSize,
		layout:   o.layout,
		notice:   NoticeEmptyText,
	}
	p.e = engine{
		sched:  sched,
		surf:   surf,
		timing: o.timing,
		hooks:  o.hooks,
		speed:  NewSpeed(),
	}
	if fonts != nil {
		p.resolveFont()
	}
	return p
}

// SetText replaces the text and rebuilds the segment model.
// Playback stops and restarts from the beginning on the next Play.
func (p *Player) SetText(text string) {
	p.text = text
	p.rebuild()
}

// SetFont selects a font by name and rebuilds the segment model.
// An unavailable font leaves the player with no segments and
// NoticeFontUnavailable.
func (p *Player) SetFont(name string) {
	p.fontName = name
	p.resolveFont()
	p.rebuild()
}

// SetFontSize changes the font size in pixels per em and rebuilds.
// Sizes rejected by ValidFontSize are ignored.
func (p *Player) SetFontSize(size float64) {
	if !ValidFontSize(size) || size == p.fontSize {
		return
	}
	p.fontSize = size
	p.resolveFont()
	p.rebuild()
}

// SetLetterSpacing changes the spacing added after every glyph and rebuilds.
// Non-finite values are ignored.
func (p *Player) SetLetterSpacing(s float64) {
	if math.IsNaN(s) || math.IsInf(s, 0) || s == p.layout.LetterSpacing {
		return
	}
	p.layout.LetterSpacing = s
	p.rebuild()
}

func (p *Player) resolveFont() {
	p.font = nil
	if p.fonts == nil {
		Logger().Warn("handwrite: no font resolver", "font", p.fontName)
		return
	}
	f, err := p.fonts.Lookup(p.fontName, p.fontSize)
	if err != nil {
		Logger().Warn("handwrite: font unavailable", "font", p.fontName, "err", err)
		return
	}
	p.font = f
}

// rebuild destroys and recreates the segment model from the current text
// and font.
func (p *Player) rebuild() {
	p.e.pause()

	text := p.text
	switch {
	case strings.TrimSpace(text) == "":
		text = ""
		p.notice = NoticeEmptyText
	case p.font == nil:
		p.notice = NoticeFontUnavailable
	default:
		p.notice = NoticeNone
	}

	layout := BuildSegments(text, p.font, p.layout)
	Logger().Debug("handwrite: segment model rebuilt",
		"segments", layout.Len(), "font", layout.Font, "width", layout.Width)
	p.e.load(layout)
}

// Play starts or resumes playback. It is a no-op when already playing.
//
// With no segments the model is rebuilt from the current text first; if it
// is still empty the player stays stopped. At the end boundary of the active
// direction playback restarts from that direction's start.
func (p *Player) Play() {
	if p.e.state == Playing {
		return
	}
	if p.e.n() == 0 {
		p.rebuild()
	}
	p.e.play()
}

// Pause suspends playback at the current segment. It is a no-op when paused
// or stopped, apart from cancelling a pending restart.
func (p *Player) Pause() { p.e.pause() }

// Stop resets to the canonical state: stopped, first segment, 1x forward,
// every segment hidden.
func (p *Player) Stop() { p.e.stop() }

// TogglePlay pauses when playing and plays otherwise. After a completed run
// it rewinds and replays from the start once the grace delay has passed.
func (p *Player) TogglePlay() {
	switch {
	case p.e.state == Playing:
		p.Pause()
	case p.glyph() == GlyphReplay:
		p.e.replay()
	default:
		p.Play()
	}
}

// Rewind returns to the start of the active direction. Running playback
// restarts after the grace delay.
func (p *Player) Rewind() { p.e.rewind() }

// StepForward reveals exactly one more segment, pausing playback if active.
func (p *Player) StepForward() { p.e.step(1) }

// StepBack hides exactly one segment, pausing playback if active.
// At the first segment it is a no-op.
func (p *Player) StepBack() { p.e.step(-1) }

// Seek moves to the permille progress v, clamped to [0, 1000], and renders
// every segment consistently with the new position. Playback is paused.
func (p *Player) Seek(v int) { p.e.seek(v) }

// ChangeSpeed cycles the multiplier of dir and makes dir active. While
// playing, the player pauses and resumes after the grace delay so the new
// speed applies from the next reveal.
func (p *Player) ChangeSpeed(dir Direction) { p.e.changeSpeed(dir) }

// State returns the playback state.
func (p *Player) State() State { return p.e.state }

// Progress returns the permille progress.
func (p *Player) Progress() int { return p.e.progress() }

// Layout returns the current segment model.
func (p *Player) Layout() Layout { return p.e.layout }

// Drawables returns the drawables bound to the current segments.
func (p *Player) Drawables() []Drawable { return p.e.drawables }

// Snapshot returns the UI-facing state.
func (p *Player) Snapshot() Snapshot {
	e := &p.e
	return Snapshot{
		State:      e.state,
		Position:   e.pos,
		Segments:   e.n(),
		Progress:   e.progress(),
		Forward:    e.speed.Forward(),
		Reverse:    e.speed.Reverse(),
		Direction:  e.speed.Active(),
		SpeedLabel: e.speed.Label(),
		Glyph:      p.glyph(),
		Notice:     p.notice,
		Font:       p.fontName,
		Text:       p.text,
	}
}

func (p *Player) glyph() string {
	e := &p.e
	switch {
	case e.state == Playing:
		return GlyphPause
	case e.n() > 0 && e.pos.Direction == Forward && e.pos.Index >= e.n():
		return GlyphReplay
	default:
		return GlyphPlay
	}
}
