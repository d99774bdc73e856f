package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/surface"
)

var playCmd = &cobra.Command{
	Use:   "play [text]",
	Short: "Interactive player",
	Long: `Play opens an interactive session. The drawing advances in real time while
commands are typed; the prompt shows the transport state, progress and
speed. Type "help" for the command list. TAB completes commands and font
names.`,
	Args: cobra.ArbitraryArgs,
	RunE: runPlay,
}

// repl is an interactive session. All fields are owned by the goroutine
// running loop; readline only delivers lines to it.
type repl struct {
	s    *session
	out  io.Writer
	cols int
	rows int

	finished bool
	quit     bool
}

func newREPL(s *session, out io.Writer, cols, rows int) *repl {
	return &repl{s: s, out: out, cols: cols, rows: rows}
}

// hooks reports completion back to the loop; printing waits until the
// timeline step that fired it has returned.
func (r *repl) hooks() handwrite.Hooks {
	return handwrite.Hooks{
		Finished: func() { r.finished = true },
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	r := newREPL(nil, cmd.OutOrStdout(), cfg.Preview.Columns, cfg.Preview.Rows)
	r.s = newSession(cmd.Context(), cfg, r.hooks())

	text := cfg.Text
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}
	r.s.player.SetText(text)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt(),
		AutoComplete:    r.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		HistoryLimit:    200,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()
	r.out = rl.Stdout()

	fmt.Fprintf(r.out, "font %s, %d segments. Type help for commands.\n",
		r.s.fontName(), r.s.player.Snapshot().Segments)
	r.report(true)

	return r.loop(cmd, rl)
}

// loop multiplexes typed lines and clock ticks onto one goroutine so the
// player and its timeline are never touched concurrently.
func (r *repl) loop(cmd *cobra.Command, rl *readline.Instance) error {
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return
				}
				continue
			}
			if err != nil {
				return
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
	}()

	var tick <-chan time.Time
	if fps := cfg.Preview.FPS; fps > 0 {
		t := time.NewTicker(time.Second / time.Duration(fps))
		defer t.Stop()
		tick = t.C
	}

	last := time.Now()
	advance := func(now time.Time) {
		r.s.tl.Advance(now.Sub(last))
		last = now
		if r.finished {
			r.finished = false
			fmt.Fprintln(r.out, "done")
			r.show()
		}
	}

	prompt := r.prompt()
	for !r.quit {
		select {
		case <-cmd.Context().Done():
			return nil
		case now := <-tick:
			advance(now)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			advance(time.Now())
			if err := r.exec(line); err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
		}

		if p := r.prompt(); p != prompt {
			prompt = p
			rl.SetPrompt(p)
			rl.Refresh()
		}
	}
	return nil
}

func (r *repl) prompt() string {
	snap := r.s.player.Snapshot()
	return fmt.Sprintf("[%s %5.1f%% %s]> ", snap.Glyph, float64(snap.Progress)/10, snap.SpeedLabel)
}

// exec runs one command line.
func (r *repl) exec(line string) error {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "" {
		return nil
	}
	c, ok := lookupCommand(strings.ToLower(name))
	if !ok {
		return fmt.Errorf("unknown command %q, try help", name)
	}
	if err := c.run(r, strings.TrimSpace(arg)); err != nil {
		return err
	}
	r.report(c.show)
	return nil
}

// report prints the notice, if any, or the drawing when asked to and the
// player is not animating it.
func (r *repl) report(show bool) {
	snap := r.s.player.Snapshot()
	switch {
	case snap.Notice != handwrite.NoticeNone:
		fmt.Fprintln(r.out, snap.Notice)
	case show && snap.State != handwrite.Playing:
		r.show()
	}
}

func (r *repl) show() {
	if art := r.s.canvas.Preview(r.cols, r.rows); art != "" {
		fmt.Fprintln(r.out, art)
	}
}

func (r *repl) status() {
	snap := r.s.player.Snapshot()
	fmt.Fprintf(r.out, "%s  segment %d/%d (%s)  progress %.1f%%  speed %s %s  font %s\n",
		snap.State, snap.Position.Index+1, snap.Segments, snap.Position.Direction,
		float64(snap.Progress)/10, snap.Direction, snap.SpeedLabel, r.s.fontName())
}

func (r *repl) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, c := range commands {
		var children []readline.PrefixCompleterInterface
		switch c.name {
		case "font":
			children = append(children, readline.PcItemDynamic(func(string) []string {
				return r.s.lib.Available()
			}))
		case "help":
			for _, sub := range commands {
				children = append(children, readline.PcItem(sub.name))
			}
		}
		items = append(items, readline.PcItem(c.name, children...))
	}
	return readline.NewPrefixCompleter(items...)
}

// parsePermille accepts a permille value ("250") or a percentage ("25%",
// "12.5%"). Out-of-range values are left for the player to clamp.
func parsePermille(s string) (int, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return 0, fmt.Errorf("bad percentage %q", s)
		}
		return int(f*10 + 0.5), nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad progress %q: want 0-1000 or a percentage", s)
	}
	return v, nil
}

func parsePixels(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("bad size %q", s)
	}
	return v, nil
}

func (r *repl) save(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return errors.New("usage: save <file> [format]")
	}
	path, explicit := fields[0], ""
	if len(fields) > 1 {
		explicit = fields[1]
	}
	format := formatFor(explicit, path, cfg.Preview.Format)

	err := writeOutput(path, r.out, func(w io.Writer) error {
		return surface.Encode(format, w, r.s.canvas)
	})
	if err != nil {
		if path != "-" {
			os.Remove(path)
		}
		return err
	}
	if path != "-" {
		fmt.Fprintf(r.out, "saved %s (%s)\n", path, format)
	}
	return nil
}
