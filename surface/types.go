// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"

	"github.com/gogpu/handwrite/internal/geom"
)

// Default canvas settings.
const (
	DefaultStrokeWidth = 2.0
	DefaultPadding     = 8.0
	DefaultTolerance   = geom.DefaultTolerance
)

// StrokeStyle defines how revealed outlines are drawn.
type StrokeStyle struct {
	// Color is the ink color.
	Color color.Color

	// Width is the stroke width in pixels.
	Width float64
}

// DefaultStrokeStyle returns a 2px black stroke.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Color: color.Black,
		Width: DefaultStrokeWidth,
	}
}

// WithColor returns a copy with the specified color.
func (s StrokeStyle) WithColor(c color.Color) StrokeStyle {
	s.Color = c
	return s
}

// WithWidth returns a copy with the specified width.
func (s StrokeStyle) WithWidth(w float64) StrokeStyle {
	s.Width = w
	return s
}

// Options configures a Canvas.
type Options struct {
	// Width and Height fix the rendered image size in pixels.
	// Zero sizes the image to the bound layout plus padding.
	Width  int
	Height int

	// Padding is the margin around the layout when the size is automatic.
	Padding float64

	// Baseline is the y coordinate of the text baseline. Zero places the
	// baseline so that the tallest glyph touches the top padding.
	Baseline float64

	// Background is the image background. Default: transparent.
	Background color.Color

	// Stroke is the ink style.
	Stroke StrokeStyle

	// Tolerance is the curve flattening tolerance in pixels.
	Tolerance float64
}

// DefaultOptions returns Options with default values and an automatic size.
func DefaultOptions() Options {
	return Options{
		Padding:   DefaultPadding,
		Stroke:    DefaultStrokeStyle(),
		Tolerance: DefaultTolerance,
	}
}

// normalized fills zero fields with defaults.
func (o Options) normalized() Options {
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.Stroke.Color == nil {
		o.Stroke.Color = color.Black
	}
	if o.Stroke.Width <= 0 {
		o.Stroke.Width = DefaultStrokeWidth
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}
