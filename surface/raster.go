// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/handwrite/internal/geom"
)

// Coverage rasterizes the revealed strokes into an alpha mask of the canvas
// frame. Every polyline edge is expanded into a quad of the stroke width,
// and every vertex gets a square join, all with the same winding so that
// overlaps accumulate instead of cancelling.
func (c *Canvas) Coverage() *image.Alpha {
	w, h, off := c.frame()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	hw := c.opts.Stroke.Width / 2

	empty := true
	for _, s := range c.strokes {
		for _, pl := range s.Visible() {
			for i := 1; i < len(pl); i++ {
				a, b := pl[i-1].Add(off), pl[i].Add(off)
				edgeQuad(z, a, b, hw)
				joinSquare(z, b, hw)
			}
			if len(pl) > 0 {
				joinSquare(z, pl[0].Add(off), hw)
			}
			empty = false
		}
	}
	if empty {
		return mask
	}

	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// Render draws the revealed strokes over the background into a new image.
func (c *Canvas) Render() *image.RGBA {
	mask := c.Coverage()
	img := image.NewRGBA(mask.Bounds())
	if bg := c.opts.Background; bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	ink := image.NewUniform(c.opts.Stroke.Color)
	draw.DrawMask(img, img.Bounds(), ink, image.Point{}, mask, image.Point{}, draw.Over)
	return img
}

// edgeQuad adds the rectangle covering segment a-b widened by hw on both
// sides. Its winding is the same for every direction of a-b.
func edgeQuad(z *vector.Rasterizer, a, b geom.Point, hw float64) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	n := geom.Pt(-d.Y/l*hw, d.X/l*hw)

	p0, p1 := a.Add(n), b.Add(n)
	p2, p3 := b.Sub(n), a.Sub(n)
	z.MoveTo(f32(p0.X), f32(p0.Y))
	z.LineTo(f32(p1.X), f32(p1.Y))
	z.LineTo(f32(p2.X), f32(p2.Y))
	z.LineTo(f32(p3.X), f32(p3.Y))
	z.ClosePath()
}

// joinSquare adds an axis-aligned square of half-size hw centred on p,
// wound like edgeQuad.
func joinSquare(z *vector.Rasterizer, p geom.Point, hw float64) {
	z.MoveTo(f32(p.X-hw), f32(p.Y+hw))
	z.LineTo(f32(p.X+hw), f32(p.Y+hw))
	z.LineTo(f32(p.X+hw), f32(p.Y-hw))
	z.LineTo(f32(p.X-hw), f32(p.Y-hw))
	z.ClosePath()
}

func f32(v float64) float32 { return float32(v) }

// CoverageAt returns the mask coverage in [0, 1] at pixel (x, y).
func CoverageAt(mask *image.Alpha, x, y int) float64 {
	if !image.Pt(x, y).In(mask.Bounds()) {
		return 0
	}
	return float64(mask.AlphaAt(x, y).A) / math.MaxUint8
}

