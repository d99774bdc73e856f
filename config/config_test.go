package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/handwrite"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if cfg.Playback.BaseDuration != handwrite.DefaultBaseDuration {
		t.Errorf("BaseDuration = %v, want default", cfg.Playback.BaseDuration)
	}
	if cfg.FontSize != handwrite.DefaultFontSize {
		t.Errorf("FontSize = %v, want default", cfg.FontSize)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
text: Hello
font: " Serif "
font_size: 64
playback:
  base_duration: 1.5s
  easing: linear
  reverse_scaling: Multiply
preview:
  format: BMP
log_level: DEBUG
fonts:
  - name: Serif
    path: fonts\serif.ttf
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Text != "Hello" || cfg.Font != "Serif" || cfg.FontSize != 64 {
		t.Errorf("text/font/size = %q/%q/%v", cfg.Text, cfg.Font, cfg.FontSize)
	}
	if cfg.Playback.BaseDuration != 1500*time.Millisecond {
		t.Errorf("BaseDuration = %v, want 1.5s", cfg.Playback.BaseDuration)
	}
	// Unset keys keep their defaults.
	if cfg.Playback.MaxDuration != handwrite.DefaultMaxDuration {
		t.Errorf("MaxDuration = %v, want default", cfg.Playback.MaxDuration)
	}
	if cfg.Playback.ReverseScaling != ReverseMultiply {
		t.Errorf("ReverseScaling = %q, want %q", cfg.Playback.ReverseScaling, ReverseMultiply)
	}
	if cfg.Preview.Format != "bmp" || cfg.LogLevel != "debug" {
		t.Errorf("format/log_level = %q/%q", cfg.Preview.Format, cfg.LogLevel)
	}
	if got := cfg.Fonts[0].Path; got != filepath.Clean("fonts/serif.ttf") {
		t.Errorf("font path = %q", got)
	}
}

func TestParseNonFiniteFontSize(t *testing.T) {
	cfg, err := Parse([]byte("font_size: .nan\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	warnings, err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !strings.Contains(strings.Join(warnings, "\n"), "font_size") {
		t.Errorf("warnings %v should mention font_size", warnings)
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse([]byte("playback: [unclosed")); err == nil {
		t.Error("Parse() should fail on malformed YAML")
	}
	if _, err := Parse([]byte("playback:\n  base_duration: soon\n")); err == nil {
		t.Error("Parse() should fail on a malformed duration")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "handwrite.yaml")
	cfg := Default()
	cfg.Text = "round trip"
	cfg.Playback.StepDelay = 75 * time.Millisecond

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "step_delay: 75ms") {
		t.Errorf("durations should be written as strings:\n%s", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Text != cfg.Text || got.Playback != cfg.Playback || got.Preview != cfg.Preview {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  bool
		wantWarn string
	}{
		{"defaults", func(*Config) {}, false, ""},
		{"zero base", func(c *Config) { c.Playback.BaseDuration = 0 }, true, ""},
		{"negative step", func(c *Config) { c.Playback.StepDelay = -time.Second }, true, ""},
		{"inverted bounds", func(c *Config) { c.Playback.MaxDuration = time.Millisecond }, true, ""},
		{"bad scaling", func(c *Config) { c.Playback.ReverseScaling = "sideways" }, true, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true, ""},
		{"unknown easing", func(c *Config) { c.Playback.Easing = "bounce" }, false, "unknown easing"},
		{"bad size", func(c *Config) { c.FontSize = -3 }, false, "font_size"},
		{"nan size", func(c *Config) { c.FontSize = math.NaN() }, false, "font_size"},
		{"huge size", func(c *Config) { c.FontSize = 1e12 }, false, "font_size"},
		{"bad format", func(c *Config) { c.Preview.Format = "gif" }, false, "preview format"},
		{"duplicate font", func(c *Config) {
			c.Fonts = []FontEntry{{Name: "Go"}, {Name: "Go"}}
		}, false, "listed twice"},
		{"missing font file", func(c *Config) {
			c.Fonts = []FontEntry{{Name: "Gone", Path: "/nonexistent/gone.ttf"}}
		}, false, `font "Gone"`},
		{"font not listed", func(c *Config) {
			c.Font = "Serif"
			c.Fonts = []FontEntry{{Name: "Go"}}
		}, false, "not in the font list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			warnings, err := cfg.Validate()

			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
			joined := strings.Join(warnings, "\n")
			if tt.wantWarn == "" && !tt.wantErr && len(warnings) > 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
			if tt.wantWarn != "" && !strings.Contains(joined, tt.wantWarn) {
				t.Errorf("warnings %v should mention %q", warnings, tt.wantWarn)
			}
		})
	}
}

func TestFontEntries(t *testing.T) {
	cfg := Default()
	if e := cfg.FontEntries(); len(e) != 1 || e[0].Path != "" {
		t.Errorf("default entries = %+v, want the embedded font", e)
	}

	dir := t.TempDir()
	cfg.path = filepath.Join(dir, "handwrite.yaml")
	abs := filepath.Join(dir, "abs.ttf")
	cfg.Fonts = []FontEntry{
		{Name: "Rel", Path: "fonts/rel.ttf"},
		{Name: "Abs", Path: abs},
		{Name: "Go"},
	}

	e := cfg.FontEntries()
	if e[0].Path != filepath.Join(dir, "fonts/rel.ttf") {
		t.Errorf("relative path resolved to %q", e[0].Path)
	}
	if e[1].Path != abs || e[2].Path != "" {
		t.Errorf("entries = %+v", e)
	}
}

func TestOptionsDrivePlayer(t *testing.T) {
	cfg := Default()
	cfg.FontSize = 42
	if opts := cfg.Options(); len(opts) == 0 {
		t.Fatal("Options() returned nothing")
	}
	if got := cfg.CanvasOptions().Stroke.Width; got != cfg.Preview.StrokeWidth {
		t.Errorf("canvas stroke width = %v, want %v", got, cfg.Preview.StrokeWidth)
	}
}

func TestLogger(t *testing.T) {
	cfg := Default()
	if cfg.Logger() != nil {
		t.Error("logging should be disabled by default")
	}
	cfg.LogLevel = "warn"
	if l := cfg.Logger(); l == nil || l.Enabled(t.Context(), -4) {
		t.Error("warn logger should exist and drop debug records")
	}
}
