package glyph

import (
	"errors"

	"github.com/gogpu/handwrite"
)

// Sentinel errors for the glyph package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("glyph: empty font data")

	// ErrUnknownFont is returned by Library.Lookup for a name that was
	// never added or loaded.
	ErrUnknownFont = errors.New("glyph: unknown font")

	// ErrInvalidSize is returned by Library.Lookup for a size rejected by
	// handwrite.ValidFontSize.
	ErrInvalidSize = errors.New("glyph: invalid font size")
)

// LoadError is recorded when a library entry fails to load.
// It matches both the underlying cause and handwrite.ErrFontUnavailable.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	msg := "glyph: load font " + e.Name
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the cause and handwrite.ErrFontUnavailable.
func (e *LoadError) Unwrap() []error {
	return []error{e.Err, handwrite.ErrFontUnavailable}
}
