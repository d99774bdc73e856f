package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/surface"
	"github.com/gogpu/handwrite/tween"
)

// ErrInvalid is wrapped by every fatal validation error.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the configuration. Problems the command can run with are
// returned as warnings; the first fatal problem is returned as an error
// wrapping ErrInvalid.
func (c *Config) Validate() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalid)
	}

	pb := c.Playback
	switch {
	case pb.BaseDuration <= 0:
		return warnings, fmt.Errorf("%w: playback.base_duration must be positive, got %v", ErrInvalid, pb.BaseDuration)
	case pb.MinDuration < 0 || pb.StepDelay < 0 || pb.GraceDelay < 0:
		return warnings, fmt.Errorf("%w: playback durations must not be negative", ErrInvalid)
	case pb.MaxDuration < pb.MinDuration:
		return warnings, fmt.Errorf("%w: playback.max_duration %v below min_duration %v", ErrInvalid, pb.MaxDuration, pb.MinDuration)
	}

	switch pb.ReverseScaling {
	case ReverseDivide, ReverseMultiply:
	default:
		return warnings, fmt.Errorf("%w: playback.reverse_scaling must be %q or %q, got %q",
			ErrInvalid, ReverseDivide, ReverseMultiply, pb.ReverseScaling)
	}

	if _, ok := parseLevel(c.LogLevel); !ok {
		return warnings, fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}

	if pb.Easing != "" && !tween.Known(pb.Easing) {
		warnings = append(warnings, fmt.Sprintf("unknown easing %q, using linear", pb.Easing))
	}
	if !handwrite.ValidFontSize(c.FontSize) {
		warnings = append(warnings, fmt.Sprintf("font_size %v is outside (0, %d], using the default",
			c.FontSize, handwrite.MaxFontSize))
	}
	if c.Preview.Format != "" {
		if _, ok := surface.Get(c.Preview.Format); !ok {
			warnings = append(warnings, fmt.Sprintf("unknown preview format %q", c.Preview.Format))
		}
	}
	if c.Preview.FPS <= 0 {
		warnings = append(warnings, "preview.fps is not positive, realtime playback disabled")
	}

	warnings = append(warnings, c.validateFonts()...)
	return warnings, nil
}

// validateFonts reports duplicate or missing fonts. Missing font files are
// not fatal: the library marks them unavailable.
func (c *Config) validateFonts() (warnings []string) {
	seen := make(map[string]bool, len(c.Fonts))
	for i, f := range c.Fonts {
		if f.Name == "" {
			warnings = append(warnings, fmt.Sprintf("fonts[%d] has no name", i))
			continue
		}
		if seen[f.Name] {
			warnings = append(warnings, fmt.Sprintf("font %q is listed twice, the last entry wins", f.Name))
		}
		seen[f.Name] = true
	}

	for _, e := range c.FontEntries() {
		if e.Path == "" {
			continue
		}
		if st, err := os.Stat(e.Path); err != nil {
			warnings = append(warnings, fmt.Sprintf("font %q: %v", e.Name, err))
		} else if st.IsDir() {
			warnings = append(warnings, fmt.Sprintf("font %q: %s is a directory", e.Name, e.Path))
		}
	}

	if c.Font != "" && len(c.Fonts) > 0 && !seen[c.Font] {
		warnings = append(warnings, fmt.Sprintf("font %q is not in the font list", c.Font))
	}
	return warnings
}
