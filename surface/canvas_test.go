// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/glyph"
	"github.com/gogpu/handwrite/tween"
)

func bind(t *testing.T, text string, opts Options) (*Canvas, handwrite.Layout) {
	t.Helper()
	layout := handwrite.BuildSegments(text, glyph.Default().Face(48), handwrite.LayoutOptions{})
	c := NewCanvas(opts)
	ds := c.Bind(layout)
	if len(ds) != layout.Len() {
		t.Fatalf("Bind() returned %d drawables, want %d", len(ds), layout.Len())
	}
	return c, layout
}

// revealedCanvas returns a canvas with every stroke fully revealed.
func revealedCanvas(t *testing.T, text string) *Canvas {
	t.Helper()
	c, _ := bind(t, text, DefaultOptions())
	for _, s := range c.Strokes() {
		s.SetRevealFraction(1)
	}
	return c
}

func inkedPixels(c *Canvas) int {
	mask := c.Coverage()
	n := 0
	for _, a := range mask.Pix {
		if a > 0 {
			n++
		}
	}
	return n
}

func TestBindHidden(t *testing.T) {
	c, layout := bind(t, "Ab", DefaultOptions())

	for i, s := range c.Strokes() {
		if s.RevealFraction() != 0 {
			t.Errorf("stroke %d fraction = %v, want 0", i, s.RevealFraction())
		}
		if s.TotalLength() != layout.Segments[i].OutlineLength {
			t.Errorf("stroke %d TotalLength = %v, want %v", i, s.TotalLength(), layout.Segments[i].OutlineLength)
		}
		if s.Segment().Char != layout.Segments[i].Char {
			t.Errorf("stroke %d char = %q", i, s.Segment().Char)
		}
	}
	if c.Revealed() != 0 || inkedPixels(c) != 0 {
		t.Error("a freshly bound canvas should show nothing")
	}
	if c.Layout().Len() != 2 {
		t.Errorf("Layout().Len() = %d, want 2", c.Layout().Len())
	}
}

func TestBindReplaces(t *testing.T) {
	c, _ := bind(t, "abc", DefaultOptions())
	old := c.Strokes()[0]
	old.SetRevealFraction(1)

	c.Bind(handwrite.BuildSegments("x", glyph.Default().Face(48), handwrite.LayoutOptions{}))
	if len(c.Strokes()) != 1 || c.Strokes()[0] == old {
		t.Fatal("Bind should replace every stroke")
	}
	if c.Revealed() != 0 {
		t.Error("strokes from the previous layout must not render")
	}
}

func TestStrokeReveal(t *testing.T) {
	c, _ := bind(t, "O", DefaultOptions())
	s := c.Strokes()[0]
	full := geomLength(s)

	tests := []struct {
		fraction float64
		want     float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{0.5, 0.5},
		{1, 1},
		{3, 1},
	}
	for _, tt := range tests {
		s.SetRevealFraction(tt.fraction)
		if s.RevealFraction() != max(0, min(tt.fraction, 1)) {
			t.Errorf("SetRevealFraction(%v) stored %v", tt.fraction, s.RevealFraction())
		}
		got := c.Revealed() / full
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("fraction %v revealed %v of the outline, want %v", tt.fraction, got, tt.want)
		}
	}

	// The flattened outline tracks the analytic length.
	if math.Abs(full-s.TotalLength())/s.TotalLength() > 0.01 {
		t.Errorf("flattened length %v differs from outline length %v", full, s.TotalLength())
	}
}

func geomLength(s *Stroke) float64 {
	prev := s.RevealFraction()
	defer s.SetRevealFraction(prev)
	s.SetRevealFraction(1)
	var l float64
	for _, pl := range s.Visible() {
		l += pl.Length()
	}
	return l
}

func TestStrokeWithoutGeometry(t *testing.T) {
	c := NewCanvas(DefaultOptions())
	ds := c.Bind(handwrite.Layout{Segments: []handwrite.Segment{
		{Index: 0, Char: 'x', OutlineLength: 12},
	}})
	ds[0].SetRevealFraction(1)

	if ds[0].TotalLength() != 12 {
		t.Errorf("TotalLength() = %v, want 12", ds[0].TotalLength())
	}
	if c.Revealed() != 0 || inkedPixels(c) != 0 {
		t.Error("a stroke without an outline path should render nothing")
	}
}

func TestRenderProgressivelyInks(t *testing.T) {
	c, _ := bind(t, "Hi", DefaultOptions())

	var prev int
	for _, f := range []float64{0.2, 0.6, 1} {
		for _, s := range c.Strokes() {
			s.SetRevealFraction(f)
		}
		n := inkedPixels(c)
		if n <= prev {
			t.Errorf("fraction %v inked %d pixels, previous %d", f, n, prev)
		}
		prev = n
	}
}

func TestRenderColors(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	opts := DefaultOptions()
	opts.Background = color.White
	opts.Stroke = opts.Stroke.WithColor(red).WithWidth(3)

	c, _ := bind(t, "l", opts)
	c.Strokes()[0].SetRevealFraction(1)
	img := c.Render()

	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner pixel = %v, want white", got)
	}

	mask := c.Coverage()
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if CoverageAt(mask, x, y) == 1 {
				if got := img.RGBAAt(x, y); got != red {
					t.Errorf("fully covered pixel = %v, want %v", got, red)
				}
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no fully covered pixel with a 3px stroke")
	}
}

func TestFixedFrame(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 320, 90
	opts.Baseline = 70

	c, _ := bind(t, "Go", opts)
	if b := c.Render().Bounds(); b.Dx() != 320 || b.Dy() != 90 {
		t.Errorf("Render() size = %dx%d, want 320x90", b.Dx(), b.Dy())
	}
}

func TestAutoFrameFitsLayout(t *testing.T) {
	c := revealedCanvas(t, "Hello")
	b := c.Bounds()
	img := c.Render().Bounds()
	if float64(img.Dx()) < b.Width() || float64(img.Dy()) < b.Height() {
		t.Errorf("image %v smaller than layout bounds %+v", img, b)
	}

	// Every inked pixel lies inside the padding frame, so the border is clear.
	mask := c.Coverage()
	for x := range img.Dx() {
		if CoverageAt(mask, x, 0) > 0 || CoverageAt(mask, x, img.Dy()-1) > 0 {
			t.Fatalf("ink on the top or bottom border at x=%d", x)
		}
	}
}

func TestPreview(t *testing.T) {
	c, _ := bind(t, "Hi", DefaultOptions())

	if c.Preview(0, 4) != "" || c.Preview(4, -1) != "" {
		t.Error("non-positive dimensions should yield an empty preview")
	}

	hidden := c.Preview(20, 5)
	if strings.Trim(hidden, " \n") != "" {
		t.Errorf("hidden preview should be blank, got:\n%s", hidden)
	}
	lines := strings.Split(hidden, "\n")
	if len(lines) != 5 || len(lines[0]) != 20 {
		t.Fatalf("preview is %d lines of %d, want 5 of 20", len(lines), len(lines[0]))
	}

	for _, s := range c.Strokes() {
		s.SetRevealFraction(1)
	}
	shown := c.Preview(20, 5)
	if strings.Trim(shown, " \n") == "" {
		t.Error("revealed preview should contain ink")
	}
}

func TestCanvasDrivenByPlayer(t *testing.T) {
	lib := glyph.NewLibrary()
	lib.Add("Go", glyph.Default())

	tl := tween.NewTimeline()
	c := NewCanvas(DefaultOptions())
	p := handwrite.NewPlayer(tl, c, lib, handwrite.WithFontSize(40))
	p.SetText("ab")

	if len(c.Strokes()) != 2 {
		t.Fatalf("canvas has %d strokes, want 2", len(c.Strokes()))
	}

	p.Play()
	tl.Advance(400 * time.Millisecond)
	mid := c.Revealed()
	if mid <= 0 {
		t.Error("nothing revealed mid-way through the first segment")
	}

	tl.Drain(10*time.Millisecond, time.Minute)
	var total float64
	for _, s := range c.Strokes() {
		total += geomLength(s)
	}
	if math.Abs(c.Revealed()-total) > 1e-6 {
		t.Errorf("after playback revealed %v of %v", c.Revealed(), total)
	}

	p.Seek(0)
	if c.Revealed() != 0 {
		t.Errorf("after Seek(0) revealed %v, want 0", c.Revealed())
	}
}
