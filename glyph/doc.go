// Package glyph resolves characters to stroke outlines for handwrite.
//
// The pipeline separates the heavy and light halves of a font:
//
//   - Source: parsed font file, shared (golang.org/x/image/font/opentype)
//   - Face: a Source at a fixed size, resolving runes to Outlines and
//     shaping runs with HarfBuzz (github.com/go-text/typesetting)
//   - Library: named fonts, loaded concurrently, with failed fonts hidden
//
// # Example usage
//
//	lib := glyph.LoadLibrary(ctx, []glyph.Entry{
//	    {Name: "Go"},
//	    {Name: "Script", Path: "fonts/script.ttf"},
//	})
//	face, err := lib.Lookup("Script", 100)
//	if err != nil {
//	    // errors.Is(err, handwrite.ErrFontUnavailable)
//	}
//
// Outline coordinates are in pixels with the origin on the baseline and the
// Y axis pointing down.
package glyph
