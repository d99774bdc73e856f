package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/handwrite"
	"github.com/gogpu/handwrite/config"
)

func newTestREPL(t *testing.T, text string) (*repl, *bytes.Buffer) {
	t.Helper()
	prev := cfg
	cfg = config.Default()
	t.Cleanup(func() { cfg = prev })

	var out bytes.Buffer
	r := newREPL(nil, &out, 40, 6)
	r.s = newSession(context.Background(), cfg, r.hooks())
	r.s.player.SetText(text)
	return r, &out
}

func run(t *testing.T, r *repl, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if err := r.exec(line); err != nil {
			t.Fatalf("exec(%q) error = %v", line, err)
		}
	}
}

func TestParsePermille(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"250", 250, false},
		{"1000", 1000, false},
		{"-5", -5, false},
		{"25%", 250, false},
		{"12.5%", 125, false},
		{"100 %", 1000, false},
		{"half", 0, true},
		{"x%", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePermille(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePermille(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePermille(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		explicit, path, fallback string
		want                     string
	}{
		{"", "out.png", "text", "png"},
		{"", "out.TIF", "text", "tiff"},
		{"", "out.txt", "png", "text"},
		{"", "out.gif", "png", "png"},
		{"", "-", "text", "text"},
		{"BMP", "out.png", "text", "bmp"},
	}
	for _, tt := range tests {
		if got := formatFor(tt.explicit, tt.path, tt.fallback); got != tt.want {
			t.Errorf("formatFor(%q, %q, %q) = %q, want %q", tt.explicit, tt.path, tt.fallback, got, tt.want)
		}
	}
}

func TestREPLTransport(t *testing.T) {
	r, out := newTestREPL(t, "Hello")
	p := r.s.player

	run(t, r, "seek 40%")
	if got := p.Progress(); got != 400 {
		t.Errorf("after seek 40%% progress = %d, want 400", got)
	}
	if !strings.ContainsAny(out.String(), ".:-=+*#%@") {
		t.Errorf("seek should print the drawing, got:\n%s", out.String())
	}

	run(t, r, "next")
	if got := p.Progress(); got != 600 {
		t.Errorf("after next progress = %d, want 600", got)
	}
	run(t, r, "b", "back")
	if got := p.Progress(); got != 200 {
		t.Errorf("after two backs progress = %d, want 200", got)
	}

	run(t, r, "play")
	if p.State() != handwrite.Playing {
		t.Fatalf("state = %v, want playing", p.State())
	}
	run(t, r, "pause")
	if p.State() != handwrite.Paused {
		t.Errorf("state = %v, want paused", p.State())
	}
	run(t, r, "stop")
	if p.State() != handwrite.Stopped || p.Progress() != 0 {
		t.Errorf("after stop state = %v progress = %d", p.State(), p.Progress())
	}
}

func TestREPLSpeed(t *testing.T) {
	r, out := newTestREPL(t, "ab")

	run(t, r, "speed", "speed")
	if got := r.s.player.Snapshot().SpeedLabel; got != "4x" {
		t.Errorf("after two speed commands label = %q, want 4x", got)
	}
	run(t, r, "reverse")
	snap := r.s.player.Snapshot()
	if snap.Direction != handwrite.Reverse || snap.Forward != 1 || snap.SpeedLabel != "-2x" {
		t.Errorf("after reverse snapshot = %+v", snap)
	}
	if !strings.Contains(out.String(), "speed reverse -2x") {
		t.Errorf("output should report the speed, got:\n%s", out.String())
	}
}

func TestREPLFinishes(t *testing.T) {
	r, _ := newTestREPL(t, "ab")

	run(t, r, "play")
	r.s.tl.Drain(10*time.Millisecond, time.Minute)
	if !r.finished {
		t.Fatal("Finished hook did not fire")
	}
	if r.s.player.Snapshot().Glyph != handwrite.GlyphReplay {
		t.Errorf("glyph = %q, want replay", r.s.player.Snapshot().Glyph)
	}
	if p := r.prompt(); !strings.HasPrefix(p, "[replay 100.0% 1x]") {
		t.Errorf("prompt = %q", p)
	}
}

func TestREPLNotices(t *testing.T) {
	r, out := newTestREPL(t, "Hi")

	run(t, r, "text")
	if !strings.Contains(out.String(), string(handwrite.NoticeEmptyText)) {
		t.Errorf("empty text should print the notice, got:\n%s", out.String())
	}

	out.Reset()
	run(t, r, "text Hi", "font Missing")
	if !strings.Contains(out.String(), string(handwrite.NoticeFontUnavailable)) {
		t.Errorf("missing font should print the notice, got:\n%s", out.String())
	}
	if r.s.player.Snapshot().Segments != 0 {
		t.Error("an unavailable font should leave no segments")
	}

	out.Reset()
	run(t, r, "font Go")
	if r.s.player.Snapshot().Segments != 2 {
		t.Errorf("segments = %d after selecting Go, want 2", r.s.player.Snapshot().Segments)
	}
}

func TestREPLLayoutCommands(t *testing.T) {
	r, _ := newTestREPL(t, "ab")
	width := func() float64 { return r.s.canvas.Bounds().Width() }

	before := width()
	run(t, r, "size 50px")
	if w := width(); w >= before {
		t.Errorf("halving the size should narrow the layout: %v -> %v", before, w)
	}

	before = width()
	run(t, r, "spacing 30")
	if w := width(); w <= before {
		t.Errorf("letter spacing should widen the layout: %v -> %v", before, w)
	}

	before = width()
	for _, bad := range []string{"size 0", "size NaN", "size Inf", "size 1e12", "size big", "spacing wide", "spacing NaN", "seek later"} {
		if err := r.exec(bad); err == nil {
			t.Errorf("exec(%q) should fail", bad)
		}
	}
	if w := width(); w != before {
		t.Errorf("rejected commands changed the layout: %v -> %v", before, w)
	}
}

func TestREPLSave(t *testing.T) {
	r, out := newTestREPL(t, "Go")
	run(t, r, "seek 1000")

	path := filepath.Join(t.TempDir(), "go.png")
	run(t, r, "save "+path)
	if !strings.Contains(out.String(), "saved "+path+" (png)") {
		t.Errorf("save output = %q", out.String())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a PNG: %v", err)
	}

	if err := r.exec("save"); err == nil {
		t.Error("save without a file should fail")
	}
	bad := filepath.Join(t.TempDir(), "x.png")
	if err := r.exec("save " + bad + " gif"); err == nil {
		t.Error("save with an unknown format should fail")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("a failed save should not leave a file behind")
	}
}

func TestREPLHelpAndQuit(t *testing.T) {
	r, out := newTestREPL(t, "x")

	if err := r.exec("dance"); err == nil {
		t.Error("unknown command should fail")
	}
	run(t, r, "", "help")
	for _, c := range commands {
		if !strings.Contains(out.String(), c.name) {
			t.Errorf("help does not list %q", c.name)
		}
	}

	out.Reset()
	run(t, r, "help seek")
	if !strings.Contains(out.String(), "<permille|percent%>") {
		t.Errorf("help seek = %q", out.String())
	}
	if err := r.exec("help dance"); err == nil {
		t.Error("help for an unknown command should fail")
	}

	run(t, r, "Q")
	if !r.quit {
		t.Error("q should quit")
	}
}

func TestCommandNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range commands {
		for _, n := range append([]string{c.name}, c.aliases...) {
			if seen[n] {
				t.Errorf("command name %q is used twice", n)
			}
			seen[n] = true
		}
	}
}
