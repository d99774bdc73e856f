package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/handwrite"
)

// command is one interactive command.
type command struct {
	name    string
	aliases []string
	args    string
	help    string

	// show prints the drawing afterwards unless the player is animating.
	show bool
	run  func(r *repl, arg string) error
}

var commands []command

func init() {
	commands = []command{
		{name: "play", aliases: []string{"p"}, help: "start or resume playback",
			run: func(r *repl, _ string) error { r.s.player.Play(); return nil }},
		{name: "pause", help: "pause playback",
			run: func(r *repl, _ string) error { r.s.player.Pause(); return nil }},
		{name: "toggle", aliases: []string{"t"}, help: "play, pause, or replay a finished run",
			run: func(r *repl, _ string) error { r.s.player.TogglePlay(); return nil }},
		{name: "stop", help: "stop and hide every segment", show: true,
			run: func(r *repl, _ string) error { r.s.player.Stop(); return nil }},
		{name: "rewind", aliases: []string{"r"}, help: "go back to the start", show: true,
			run: func(r *repl, _ string) error { r.s.player.Rewind(); return nil }},
		{name: "next", aliases: []string{"n"}, help: "reveal one more segment", show: true,
			run: func(r *repl, _ string) error { r.s.player.StepForward(); return nil }},
		{name: "back", aliases: []string{"b"}, help: "hide the last revealed segment", show: true,
			run: func(r *repl, _ string) error { r.s.player.StepBack(); return nil }},
		{name: "seek", args: "<permille|percent%>", help: "jump to a progress point", show: true,
			run: func(r *repl, arg string) error {
				v, err := parsePermille(arg)
				if err != nil {
					return err
				}
				r.s.player.Seek(v)
				return nil
			}},
		{name: "speed", aliases: []string{"f"}, help: "cycle forward speed 1x 2x 4x 8x",
			run: func(r *repl, _ string) error { return r.changeSpeed(handwrite.Forward) }},
		{name: "reverse", aliases: []string{"rev"}, help: "cycle reverse speed 1x 2x 4x 8x",
			run: func(r *repl, _ string) error { return r.changeSpeed(handwrite.Reverse) }},
		{name: "text", args: "<text>", help: "replace the text", show: true,
			run: func(r *repl, arg string) error { r.s.player.SetText(arg); return nil }},
		{name: "font", args: "[name]", help: "list fonts or select one", show: true,
			run: func(r *repl, arg string) error {
				if arg == "" {
					r.fonts()
					return nil
				}
				r.s.player.SetFont(arg)
				return nil
			}},
		{name: "size", args: "<px>", help: "set the font size", show: true,
			run: func(r *repl, arg string) error {
				v, err := parsePixels(arg)
				if err != nil {
					return err
				}
				if !handwrite.ValidFontSize(v) {
					return fmt.Errorf("size must be in (0, %d], got %v", handwrite.MaxFontSize, v)
				}
				r.s.player.SetFontSize(v)
				return nil
			}},
		{name: "spacing", args: "<px>", help: "set the letter spacing", show: true,
			run: func(r *repl, arg string) error {
				v, err := parsePixels(arg)
				if err != nil {
					return err
				}
				r.s.player.SetLetterSpacing(v)
				return nil
			}},
		{name: "show", aliases: []string{"s"}, help: "print the drawing", show: true,
			run: func(*repl, string) error { return nil }},
		{name: "status", help: "print the transport state",
			run: func(r *repl, _ string) error { r.status(); return nil }},
		{name: "save", args: "<file> [format]", help: "write the drawing to a file",
			run: func(r *repl, arg string) error { return r.save(arg) }},
		{name: "help", aliases: []string{"?"}, args: "[command]", help: "list commands",
			run: func(r *repl, arg string) error { return r.help(arg) }},
		{name: "quit", aliases: []string{"exit", "q"}, help: "leave",
			run: func(r *repl, _ string) error { r.quit = true; return nil }},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, a := range c.aliases {
			if a == name {
				return c, true
			}
		}
	}
	return command{}, false
}

func (r *repl) changeSpeed(dir handwrite.Direction) error {
	r.s.player.ChangeSpeed(dir)
	snap := r.s.player.Snapshot()
	fmt.Fprintf(r.out, "speed %s %s\n", snap.Direction, snap.SpeedLabel)
	return nil
}

func (r *repl) fonts() {
	current := r.s.fontName()
	for _, name := range r.s.lib.Available() {
		mark := " "
		if name == current {
			mark = "*"
		}
		fmt.Fprintf(r.out, "%s %s\n", mark, name)
	}
}

func (r *repl) help(arg string) error {
	if arg != "" {
		c, ok := lookupCommand(arg)
		if !ok {
			return errors.New("no such command: " + arg)
		}
		fmt.Fprintf(r.out, "%s %s\n    %s\n", c.name, c.args, c.help)
		if len(c.aliases) > 0 {
			fmt.Fprintf(r.out, "    aliases: %s\n", strings.Join(c.aliases, ", "))
		}
		return nil
	}
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %-28s %s\n", strings.TrimSpace(c.name+" "+c.args), c.help)
	}
	return nil
}
