package handwrite

import "errors"

// Sentinel errors for the handwrite package.
//
// None of these escape the Player: they are recorded as a Notice on the
// snapshot and the player falls back to an empty segment model.
var (
	// ErrFontUnavailable is reported by a FontResolver when the selected
	// font failed to load or is not known.
	ErrFontUnavailable = errors.New("handwrite: font unavailable")
)

// Notice is a non-fatal message the UI shows in place of the drawing.
type Notice string

// Notices produced by the Player.
const (
	// NoticeNone means the drawing area shows segments.
	NoticeNone Notice = ""

	// NoticeEmptyText is shown when there is no text to draw.
	NoticeEmptyText Notice = "enter text to draw"

	// NoticeFontUnavailable is shown when the selected font could not be loaded.
	NoticeFontUnavailable Notice = "font not loaded, choose another"
)
