package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/config"
	"github.com/gogpu/handwrite/glyph"
	"github.com/gogpu/handwrite/surface"
	"github.com/gogpu/handwrite/tween"
)

var (
	cfgPath string
	verbose bool

	// cfg is loaded and validated before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "handwrite",
	Short: "Animate text as handwriting",
	Long: `Handwrite decomposes text into one stroke outline per character and reveals
the strokes one after another, with play, pause, seek, step, speed and
direction control.

Settings are read from a YAML file (handwrite.yaml by default). Run
"handwrite config init" to write one with every default spelled out.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(fontsCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	warnings, err := c.Validate()
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if err != nil {
		return err
	}

	if verbose {
		c.LogLevel = "debug"
	}
	if l := c.Logger(); l != nil {
		handwrite.SetLogger(l)
	}
	cfg = c
	return nil
}

var noHooks handwrite.Hooks

// session wires a player to the configured font library, a timeline and a
// canvas.
type session struct {
	lib    *glyph.Library
	tl     *tween.Timeline
	canvas *surface.Canvas
	player *handwrite.Player
}

func newSession(ctx context.Context, c *config.Config, hooks handwrite.Hooks) *session {
	s := &session{
		lib:    glyph.LoadLibrary(ctx, c.FontEntries()),
		tl:     tween.NewTimeline(),
		canvas: surface.NewCanvas(c.CanvasOptions()),
	}

	opts := append(c.Options(), handwrite.WithHooks(hooks))
	s.player = handwrite.NewPlayer(s.tl, s.canvas, s.lib, opts...)
	if c.Font != "" {
		s.player.SetFont(c.Font)
	}
	return s
}

// fontName returns the selected font name, resolving the default.
func (s *session) fontName() string {
	if name := s.player.Snapshot().Font; name != "" {
		return name
	}
	return s.lib.Default()
}

// formatFor picks the output format: an explicit name, then the file
// extension, then fallback.
func formatFor(explicit, path, fallback string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext != "" {
		switch ext {
		case "tif":
			ext = "tiff"
		case "txt":
			ext = "text"
		}
		if _, ok := surface.Get(ext); ok {
			return ext
		}
	}
	return fallback
}
