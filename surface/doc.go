// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface renders handwriting playback on the CPU.
//
// Canvas implements handwrite.Surface. Binding a layout creates one Stroke
// per segment; the player drives each stroke's reveal fraction and the
// canvas draws whatever is currently revealed:
//
//   - Stroke: a segment outline, flattened and placed at its pen origin,
//     revealed along its arc length
//   - Canvas.Render / Canvas.Coverage: anti-aliased raster output using
//     golang.org/x/image/vector
//   - Canvas.Preview: text art for terminals
//
// # Usage
//
//	c := surface.NewCanvas(surface.DefaultOptions())
//	p := handwrite.NewPlayer(timeline, c, library)
//	p.SetText("Hello")
//	p.Seek(500)
//
//	fmt.Println(c.Preview(80, 12))
//	err := surface.Encode("png", f, c)
//
// # Formats
//
// Output formats are looked up in a registry. The built-in formats are
// "png", "tiff", "bmp" and "text". Others can be added with Register.
package surface
