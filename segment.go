package handwrite

import (
	"golang.org/x/text/unicode/norm"
)

// Outline is the drawable geometry of one glyph as supplied by a FontProvider.
// The core only reads its length and advance; surfaces may type-assert to a
// richer interface to obtain the path.
type Outline interface {
	// Length returns the total stroke length of the outline.
	Length() float64

	// Advance returns the horizontal pen advance after the glyph.
	Advance() float64
}

// FontProvider resolves characters to outlines.
type FontProvider interface {
	// Name returns the font name.
	Name() string

	// Outline returns the outline for r. ok is false when the font has no
	// outline for r; such characters are skipped.
	Outline(r rune) (o Outline, ok bool)
}

// Shaper is an optional FontProvider extension returning shaped pen advances
// (kerning, contextual forms) for a run of text, one entry per rune.
// A nil or short result falls back to per-glyph advances.
type Shaper interface {
	Advances(runes []rune) []float64
}

// FontResolver looks up fonts by name at a given size.
type FontResolver interface {
	// Lookup returns the font or an error wrapping ErrFontUnavailable.
	Lookup(name string, size float64) (FontProvider, error)
}

// Segment is one character's drawable stroke outline.
// Segments are immutable once built.
type Segment struct {
	// Index is the position of the segment in the model.
	Index int

	// Char is the character this segment draws.
	Char rune

	// OutlineLength is the total stroke length of the outline.
	OutlineLength float64

	// Origin is the pen x position of the glyph. Only surfaces use it.
	Origin float64

	// Outline is the font geometry. Only surfaces use it.
	Outline Outline
}

// Layout is the segment model built from a text and a font.
type Layout struct {
	Segments []Segment

	// Width is the cumulative layout width consumed by surfaces.
	Width float64

	// Font is the name of the font the layout was built with.
	Font string
}

// Len returns the number of segments.
func (l Layout) Len() int { return len(l.Segments) }

// LayoutOptions control pen placement while building segments.
type LayoutOptions struct {
	// Origin is the pen x position of the first glyph.
	Origin float64

	// LetterSpacing is added after every glyph advance.
	LetterSpacing float64
}

// BuildSegments decomposes text into one segment per character, in order.
//
// The text is NFC-normalised first so that composed characters map to one
// glyph. Whitespace yields segments like any other character. Characters the
// font cannot resolve are skipped, so the segment count may be lower than the
// character count. An empty text or nil font yields an empty layout.
func BuildSegments(text string, font FontProvider, opts LayoutOptions) Layout {
	if text == "" || font == nil {
		return Layout{}
	}

	runes := []rune(norm.NFC.String(text))

	var shaped []float64
	if s, ok := font.(Shaper); ok {
		if adv := s.Advances(runes); len(adv) == len(runes) {
			shaped = adv
		}
	}

	layout := Layout{
		Segments: make([]Segment, 0, len(runes)),
		Font:     font.Name(),
	}

	x := opts.Origin
	for i, r := range runes {
		o, ok := font.Outline(r)
		if !ok || o == nil {
			Logger().Debug("handwrite: no outline for character, skipping",
				"char", string(r), "font", layout.Font)
			continue
		}

		layout.Segments = append(layout.Segments, Segment{
			Index:         len(layout.Segments),
			Char:          r,
			OutlineLength: max(o.Length(), 0),
			Origin:        x,
			Outline:       o,
		})

		advance := o.Advance()
		if shaped != nil {
			advance = shaped[i]
		}
		x += advance + opts.LetterSpacing
	}

	layout.Width = x
	if len(layout.Segments) == 0 {
		layout.Segments = nil
	}
	return layout
}
