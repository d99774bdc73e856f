// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/internal/geom"
)

// Canvas is a CPU drawing area for handwriting playback. It implements
// handwrite.Surface: Bind creates one Stroke per segment, and Render or
// Preview draw whatever the strokes currently reveal.
//
// Canvas is NOT thread-safe. Use it from the goroutine that drives the
// player.
//
// Example:
//
//	c := surface.NewCanvas(surface.DefaultOptions())
//	p := handwrite.NewPlayer(timeline, c, library)
//	...
//	img := c.Render()
type Canvas struct {
	opts    Options
	layout  handwrite.Layout
	strokes []*Stroke
}

// NewCanvas creates an empty canvas.
func NewCanvas(opts Options) *Canvas {
	return &Canvas{opts: opts.normalized()}
}

// Options returns the canvas options.
func (c *Canvas) Options() Options { return c.opts }

// Bind implements handwrite.Surface. It drops the previous strokes and
// returns one fresh, hidden stroke per segment.
func (c *Canvas) Bind(layout handwrite.Layout) []handwrite.Drawable {
	c.layout = layout
	c.strokes = make([]*Stroke, layout.Len())
	ds := make([]handwrite.Drawable, layout.Len())
	for i, seg := range layout.Segments {
		s := newStroke(seg, c.opts.Tolerance)
		c.strokes[i] = s
		ds[i] = s
	}

	handwrite.Logger().Debug("surface: layout bound",
		"segments", layout.Len(), "font", layout.Font)
	return ds
}

// Layout returns the bound layout.
func (c *Canvas) Layout() handwrite.Layout { return c.layout }

// Strokes returns the bound strokes in segment order.
func (c *Canvas) Strokes() []*Stroke { return c.strokes }

// Bounds returns the bounding box of every bound outline, revealed or not,
// in layout space.
func (c *Canvas) Bounds() geom.Rect {
	var r geom.Rect
	for _, s := range c.strokes {
		r = r.Union(s.Bounds())
	}
	return r
}

// Revealed returns the summed revealed stroke length.
func (c *Canvas) Revealed() float64 {
	var l float64
	for _, s := range c.strokes {
		l += geom.TotalLength(s.Visible())
	}
	return l
}

// frame returns the image size and the offset mapping layout space into it.
func (c *Canvas) frame() (w, h int, offset geom.Point) {
	b := c.Bounds()
	pad := c.opts.Padding + c.opts.Stroke.Width/2

	offset = geom.Pt(pad-b.MinX, pad-b.MinY)
	if c.opts.Baseline > 0 {
		offset.Y = c.opts.Baseline
	}

	w, h = c.opts.Width, c.opts.Height
	if w <= 0 {
		w = int(math.Ceil(b.Width() + 2*pad))
	}
	if h <= 0 {
		h = int(math.Ceil(offset.Y + b.MaxY + pad))
	}
	return max(w, 1), max(h, 1), offset
}
