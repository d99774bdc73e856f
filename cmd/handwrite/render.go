package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/surface"
)

// drainStep is the timeline step used when rendering without a clock.
const drainStep = 10 * time.Millisecond

var errNothingToRender = errors.New("nothing to render: pass text or set text in the configuration")

var renderOpts struct {
	output string
	format string
	at     int
	font   string
}

var renderCmd = &cobra.Command{
	Use:   "render [text]",
	Short: "Render the drawing at a progress point to a file",
	Long: `Render plays the text to completion, or seeks to --at permille, and writes
the canvas in the chosen format. The format defaults to the output file's
extension; without an output file the text preview is written to stdout.

Formats: ` + strings.Join(surface.List(), ", "),
	Args: cobra.ArbitraryArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.output, "output", "o", "-", "output file, - for stdout")
	f.StringVarP(&renderOpts.format, "format", "f", "", "output format")
	f.IntVar(&renderOpts.at, "at", handwrite.PermilleMax, "progress in permille (0-1000)")
	f.StringVar(&renderOpts.font, "font", "", "font name from the library")
}

func runRender(cmd *cobra.Command, args []string) error {
	text := cfg.Text
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}
	if strings.TrimSpace(text) == "" {
		return errNothingToRender
	}

	s := newSession(cmd.Context(), cfg, noHooks)
	if renderOpts.font != "" {
		s.player.SetFont(renderOpts.font)
	}
	s.player.SetText(text)
	if n := s.player.Snapshot().Notice; n != handwrite.NoticeNone {
		return fmt.Errorf("%s (font %q)", n, s.fontName())
	}

	if renderOpts.at >= handwrite.PermilleMax {
		s.player.Play()
		s.tl.Drain(drainStep, time.Hour)
	} else {
		s.player.Seek(renderOpts.at)
	}

	defaultFormat := cfg.Preview.Format
	if renderOpts.output == "-" {
		defaultFormat = "text"
	}
	format := formatFor(renderOpts.format, renderOpts.output, defaultFormat)

	return writeOutput(renderOpts.output, cmd.OutOrStdout(), func(w io.Writer) error {
		return surface.Encode(format, w, s.canvas)
	})
}

// writeOutput runs encode against stdout for "-" and a created file
// otherwise.
func writeOutput(path string, stdout io.Writer, encode func(io.Writer) error) (err error) {
	if path == "-" || path == "" {
		return encode(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encode(f)
}
