package glyph

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/internal/lru"
)

// Cache bounds. Sizes and runes come from user input.
const (
	maxFaces    = 16
	maxOutlines = 512
)

// Source is a parsed font file. One Source creates Faces at any size and is
// shared by all of them.
//
// Source is safe for concurrent use.
type Source struct {
	name string
	data []byte
	font *opentype.Font

	// Shaping font, parsed on first use.
	shapeOnce sync.Once
	shape     *shapingFont
	shapeErr  error

	faces *lru.Cache[float64, *Face]
}

// Parse creates a Source from TrueType or OpenType data.
// The data slice is copied and can be reused after the call.
func Parse(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font: %w", err)
	}

	s := &Source{
		data:  append([]byte(nil), data...),
		font:  f,
		faces: lru.New[float64, *Face](maxFaces),
	}
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// LoadFile reads and parses a font file.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyph: read font: %w", err)
	}
	return Parse(data)
}

var defaultSource = sync.OnceValue(func() *Source {
	s, err := Parse(goregular.TTF)
	if err != nil {
		panic("glyph: embedded Go Regular font: " + err.Error())
	}
	return s
})

// Default returns the embedded Go Regular font.
func Default() *Source {
	return defaultSource()
}

// Name returns the font family name, or "" when the font has none.
func (s *Source) Name() string { return s.name }

// UnitsPerEm returns the font's design units per em.
func (s *Source) UnitsPerEm() int { return int(s.font.UnitsPerEm()) }

// NumGlyphs returns the number of glyphs in the font.
func (s *Source) NumGlyphs() int { return s.font.NumGlyphs() }

// Face returns the face at size pixels per em. Recently used faces are
// cached per size.
func (s *Source) Face(size float64) *Face {
	return s.faces.GetOrCreate(size, func() *Face {
		return &Face{
			src:      s,
			size:     size,
			outlines: lru.New[rune, *Outline](maxOutlines),
		}
	})
}

// Face is a Source at a fixed size. It implements handwrite.FontProvider
// and handwrite.Shaper.
//
// Face is safe for concurrent use.
type Face struct {
	src  *Source
	size float64

	// buf is only used under the outlines lock.
	buf      sfnt.Buffer
	outlines *lru.Cache[rune, *Outline] // nil entry: rune has no outline
}

// Name returns the face's font name.
func (f *Face) Name() string { return f.src.name }

// Size returns the face size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Source returns the font the face was created from.
func (f *Face) Source() *Source { return f.src }

// Outline implements handwrite.FontProvider.
func (f *Face) Outline(r rune) (handwrite.Outline, bool) {
	o, ok := f.Glyph(r)
	if !ok {
		return nil, false
	}
	return o, true
}

// Glyph returns the outline of r. ok is false when the font maps r to the
// missing glyph or the glyph cannot be loaded as an outline, e.g. a color
// bitmap glyph.
func (f *Face) Glyph(r rune) (*Outline, bool) {
	o := f.outlines.GetOrCreate(r, func() *Outline { return f.load(r) })
	return o, o != nil
}

// load extracts the outline of r. It runs inside the outline cache's
// GetOrCreate, which serializes use of f.buf.
func (f *Face) load(r rune) *Outline {
	sf := f.src.font
	gid, err := sf.GlyphIndex(&f.buf, r)
	if err != nil || gid == 0 {
		return nil
	}

	ppem := floatToFixed(f.size)
	adv, err := sf.GlyphAdvance(&f.buf, gid, ppem, font.HintingNone)
	if err != nil {
		return nil
	}

	// Segments are only valid until the buffer is used again.
	segs, err := sf.LoadGlyph(&f.buf, gid, ppem, nil)
	if err != nil {
		handwrite.Logger().Debug("glyph: outline unavailable",
			"font", f.Name(), "rune", string(r), "err", err)
		return nil
	}
	return newOutline(r, gid, segs, fixedToFloat(adv))
}

// Compile-time checks.
var (
	_ handwrite.FontProvider = (*Face)(nil)
	_ handwrite.Shaper       = (*Face)(nil)
)
