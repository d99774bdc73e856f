// Package config loads the YAML configuration of the handwrite command.
//
// Fields absent from the file keep their defaults. Durations are written as
// Go duration strings ("800ms", "5s").
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/glyph"
	"github.com/gogpu/handwrite/surface"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "handwrite.yaml"

// Config holds the settings of the handwrite command.
type Config struct {
	// Text is drawn on start.
	Text string `yaml:"text"`

	// Font selects an entry of Fonts by name. Empty selects the first font
	// that loads.
	Font          string  `yaml:"font"`
	FontSize      float64 `yaml:"font_size"`
	LetterSpacing float64 `yaml:"letter_spacing"`
	Origin        float64 `yaml:"origin"`

	// Fonts is the font library. An entry without a path is the embedded
	// Go font. Empty means the embedded font only.
	Fonts []FontEntry `yaml:"fonts"`

	Playback Playback `yaml:"playback"`
	Preview  Preview  `yaml:"preview"`

	// LogLevel is one of debug, info, warn, error. Empty disables logging.
	LogLevel string `yaml:"log_level"`

	path string
}

// FontEntry is one font of the library.
type FontEntry struct {
	Name  string `yaml:"name"`
	Path  string `yaml:"path,omitempty"`
	Label string `yaml:"label,omitempty"`
}

// Playback holds reveal timing.
type Playback struct {
	BaseDuration time.Duration `yaml:"base_duration"`
	MinDuration  time.Duration `yaml:"min_duration"`
	MaxDuration  time.Duration `yaml:"max_duration"`
	StepDelay    time.Duration `yaml:"step_delay"`
	GraceDelay   time.Duration `yaml:"grace_delay"`
	Easing       string        `yaml:"easing"`

	// ReverseScaling is "divide" (reverse speeds shorten reveals) or
	// "multiply" (reverse speeds lengthen them).
	ReverseScaling string `yaml:"reverse_scaling"`
}

// Preview holds terminal and image output settings.
type Preview struct {
	Columns     int     `yaml:"columns"`
	Rows        int     `yaml:"rows"`
	FPS         int     `yaml:"fps"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Format      string  `yaml:"format"`
}

// Reverse scaling names.
const (
	ReverseDivide   = "divide"
	ReverseMultiply = "multiply"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		FontSize: handwrite.DefaultFontSize,
		Playback: Playback{
			BaseDuration:   handwrite.DefaultBaseDuration,
			MinDuration:    handwrite.DefaultMinDuration,
			MaxDuration:    handwrite.DefaultMaxDuration,
			StepDelay:      handwrite.DefaultStepDelay,
			GraceDelay:     handwrite.DefaultGraceDelay,
			Easing:         handwrite.DefaultEasing,
			ReverseScaling: ReverseDivide,
		},
		Preview: Preview{
			Columns:     80,
			Rows:        12,
			FPS:         30,
			StrokeWidth: surface.DefaultStrokeWidth,
			Format:      "png",
		},
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		cfg.path = path
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	// Windows paths with backslashes are accepted.
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Path returns the file the configuration was loaded from or saved to.
func (c *Config) Path() string { return c.path }

func (c *Config) normalize() {
	c.Font = strings.TrimSpace(c.Font)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Playback.Easing = strings.TrimSpace(c.Playback.Easing)
	c.Playback.ReverseScaling = strings.ToLower(strings.TrimSpace(c.Playback.ReverseScaling))
	if c.Playback.ReverseScaling == "" {
		c.Playback.ReverseScaling = ReverseDivide
	}
	c.Preview.Format = strings.ToLower(strings.TrimSpace(c.Preview.Format))

	for i := range c.Fonts {
		f := &c.Fonts[i]
		f.Name = strings.TrimSpace(f.Name)
		if f.Path != "" {
			f.Path = filepath.Clean(f.Path)
		}
	}
}

// Options returns the player options the configuration describes.
func (c *Config) Options() []handwrite.Option {
	pb := c.Playback
	scaling := handwrite.ReverseDivide
	if pb.ReverseScaling == ReverseMultiply {
		scaling = handwrite.ReverseMultiply
	}

	return []handwrite.Option{
		handwrite.WithBaseDuration(pb.BaseDuration),
		handwrite.WithDurationBounds(pb.MinDuration, pb.MaxDuration),
		handwrite.WithStepDelay(pb.StepDelay),
		handwrite.WithGraceDelay(pb.GraceDelay),
		handwrite.WithEasing(pb.Easing),
		handwrite.WithReverseScaling(scaling),
		handwrite.WithFontSize(c.FontSize),
		handwrite.WithLayout(handwrite.LayoutOptions{
			Origin:        c.Origin,
			LetterSpacing: c.LetterSpacing,
		}),
	}
}

// FontEntries returns the font library entries. Relative paths resolve
// against the configuration file's directory.
func (c *Config) FontEntries() []glyph.Entry {
	if len(c.Fonts) == 0 {
		return []glyph.Entry{{Name: "Go", Label: "Go (built-in)"}}
	}

	base := filepath.Dir(c.path)
	entries := make([]glyph.Entry, len(c.Fonts))
	for i, f := range c.Fonts {
		p := f.Path
		if p != "" && !filepath.IsAbs(p) && c.path != "" {
			p = filepath.Join(base, p)
		}
		entries[i] = glyph.Entry{Name: f.Name, Path: p, Label: f.Label}
	}
	return entries
}

// CanvasOptions returns the surface options for image output.
func (c *Config) CanvasOptions() surface.Options {
	opts := surface.DefaultOptions()
	opts.Stroke = opts.Stroke.WithWidth(c.Preview.StrokeWidth)
	return opts
}

// Logger returns a text logger writing to stderr at the configured level,
// or nil when logging is disabled.
func (c *Config) Logger() *slog.Logger {
	level, ok := parseLevel(c.LogLevel)
	if !ok || c.LogLevel == "" {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, bool) {
	switch s {
	case "", "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
