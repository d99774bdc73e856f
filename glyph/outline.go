package glyph

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/handwrite/internal/geom"
)

// lengthAccuracy is the arc length tolerance in pixels.
const lengthAccuracy = 0.05

// Outline is the stroke geometry of one glyph at a fixed size.
// Coordinates are in pixels with the origin on the baseline and Y growing
// down, as produced by sfnt.
//
// Outline implements handwrite.Outline. Surfaces obtain the path through
// the Path method.
type Outline struct {
	r       rune
	gid     sfnt.GlyphIndex
	path    *geom.Path
	length  float64
	advance float64
}

// Rune returns the character the outline was resolved for.
func (o *Outline) Rune() rune { return o.r }

// Length returns the total stroke length of the outline.
func (o *Outline) Length() float64 { return o.length }

// Advance returns the pen advance after the glyph.
func (o *Outline) Advance() float64 { return o.advance }

// Path returns the outline path. It is empty for blank glyphs such as space.
// The path must not be modified.
func (o *Outline) Path() *geom.Path { return o.path }

// Bounds returns the bounding box of the outline, control points included.
func (o *Outline) Bounds() geom.Rect { return o.path.Bounds() }

// IsEmpty reports whether the glyph has no ink.
func (o *Outline) IsEmpty() bool { return o.path.IsEmpty() }

// newOutline converts sfnt segments into an Outline.
func newOutline(r rune, gid sfnt.GlyphIndex, segs sfnt.Segments, advance float64) *Outline {
	p := &geom.Path{}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			a := toPoint(seg.Args[0])
			p.MoveTo(a.X, a.Y)
			open = true
		case sfnt.SegmentOpLineTo:
			a := toPoint(seg.Args[0])
			p.LineTo(a.X, a.Y)
		case sfnt.SegmentOpQuadTo:
			c, a := toPoint(seg.Args[0]), toPoint(seg.Args[1])
			p.QuadTo(c.X, c.Y, a.X, a.Y)
		case sfnt.SegmentOpCubeTo:
			c1, c2, a := toPoint(seg.Args[0]), toPoint(seg.Args[1]), toPoint(seg.Args[2])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, a.X, a.Y)
		}
	}
	if open {
		p.Close()
	}

	return &Outline{
		r:       r,
		gid:     gid,
		path:    p,
		length:  p.Length(lengthAccuracy),
		advance: advance,
	}
}

func toPoint(p fixed.Point26_6) geom.Point {
	return geom.Pt(fixedToFloat(p.X), fixedToFloat(p.Y))
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
