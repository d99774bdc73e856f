package glyph

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// shapingFont is the go-text view of a Source. font.Font is read-only and
// safe for concurrent use, unlike font.Face.
type shapingFont = font.Font

// shaperPool holds HarfbuzzShaper instances, which are not safe for
// concurrent use.
var shaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// goText returns the parsed go-text font, parsing it on first use.
func (s *Source) goText() (*shapingFont, error) {
	s.shapeOnce.Do(func() {
		face, err := font.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.shapeErr = err
			return
		}
		s.shape = face.Font
	})
	return s.shape, s.shapeErr
}

// Advances implements handwrite.Shaper. It shapes the run with HarfBuzz and
// returns the pen advance of every rune, kerning included. Runes merged into
// a ligature advance 0; the ligature's advance goes to its first rune.
//
// It returns nil when the font cannot be shaped, in which case callers fall
// back to per-glyph advances.
func (f *Face) Advances(runes []rune) []float64 {
	if len(runes) == 0 {
		return nil
	}
	sf, err := f.src.goText()
	if err != nil {
		return nil
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(sf),
		Size:      floatToFixed(f.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	shaperPool.Put(hb)

	adv := make([]float64, len(runes))
	for _, g := range out.Glyphs {
		i := g.TextIndex()
		if i < 0 || i >= len(adv) {
			continue
		}
		adv[i] += fixedToFloat(g.Advance)
	}
	return adv
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
