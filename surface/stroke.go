// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/internal/geom"
)

// pather is implemented by outlines that expose their geometry,
// such as *glyph.Outline.
type pather interface {
	Path() *geom.Path
}

// Stroke is the drawable of one segment. It reveals the segment's outline
// along its arc length: at fraction f the first f*TotalLength pixels of the
// contours, in drawing order, are visible.
//
// Stroke implements handwrite.Drawable.
type Stroke struct {
	seg      handwrite.Segment
	lines    []geom.Polyline
	bounds   geom.Rect
	fraction float64
}

// newStroke flattens the segment outline, placed at its pen origin.
// Outlines without geometry produce a stroke that renders nothing.
func newStroke(seg handwrite.Segment, tolerance float64) *Stroke {
	s := &Stroke{seg: seg}
	p, ok := seg.Outline.(pather)
	if !ok || p.Path().IsEmpty() {
		return s
	}
	placed := p.Path().Translate(seg.Origin, 0)
	s.lines = placed.Flatten(tolerance)
	s.bounds = placed.Bounds()
	return s
}

// SetRevealFraction sets the revealed fraction, clamped to [0, 1].
func (s *Stroke) SetRevealFraction(f float64) {
	s.fraction = max(0, min(f, 1))
}

// RevealFraction returns the revealed fraction.
func (s *Stroke) RevealFraction() float64 { return s.fraction }

// TotalLength returns the outline length of the segment.
func (s *Stroke) TotalLength() float64 { return s.seg.OutlineLength }

// Segment returns the segment the stroke draws.
func (s *Stroke) Segment() handwrite.Segment { return s.seg }

// Bounds returns the bounding box of the full outline in layout space.
func (s *Stroke) Bounds() geom.Rect { return s.bounds }

// Visible returns the revealed part of the outline as polylines.
func (s *Stroke) Visible() []geom.Polyline {
	switch {
	case s.fraction <= 0 || len(s.lines) == 0:
		return nil
	case s.fraction >= 1:
		return s.lines
	}
	return geom.Trim(s.lines, s.fraction*geom.TotalLength(s.lines))
}

var _ handwrite.Drawable = (*Stroke)(nil)
