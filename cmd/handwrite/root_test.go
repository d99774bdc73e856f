package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/handwrite/config"
)

// execRoot runs the command tree with args and returns its stdout.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "handwrite.yaml")

	t.Run("config init", func(t *testing.T) {
		out, err := execRoot(t, "--config", cfgFile, "config", "init")
		if err != nil {
			t.Fatalf("config init error = %v", err)
		}
		if !strings.Contains(out, "wrote "+cfgFile) {
			t.Errorf("output = %q", out)
		}
		if _, err := execRoot(t, "--config", cfgFile, "config", "init"); err == nil {
			t.Error("config init should refuse to overwrite")
		}
		if _, err := config.Load(cfgFile); err != nil {
			t.Errorf("written config does not load: %v", err)
		}
	})

	t.Run("config check", func(t *testing.T) {
		out, err := execRoot(t, "--config", cfgFile, "config", "check")
		if err != nil || !strings.Contains(out, "ok") {
			t.Errorf("config check = %q, %v", out, err)
		}

		bad := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(bad, []byte("playback:\n  base_duration: 0s\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := execRoot(t, "--config", bad, "config", "check"); err == nil {
			t.Error("config check should reject a zero base duration")
		}
	})

	t.Run("fonts", func(t *testing.T) {
		out, err := execRoot(t, "--config", cfgFile, "fonts")
		if err != nil {
			t.Fatalf("fonts error = %v", err)
		}
		if !strings.Contains(out, "*") || !strings.Contains(out, "Go") {
			t.Errorf("fonts output should mark the default Go font:\n%s", out)
		}
	})

	t.Run("render png", func(t *testing.T) {
		img := filepath.Join(dir, "hi.png")
		if _, err := execRoot(t, "--config", cfgFile, "render", "-o", img, "Hi"); err != nil {
			t.Fatalf("render error = %v", err)
		}
		f, err := os.Open(img)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if _, err := png.Decode(f); err != nil {
			t.Errorf("render output is not a PNG: %v", err)
		}
	})

	t.Run("render text", func(t *testing.T) {
		out, err := execRoot(t, "--config", cfgFile, "render", "-o", "-", "--at", "500", "Hi")
		if err != nil {
			t.Fatalf("render error = %v", err)
		}
		if strings.Trim(out, " \n") == "" {
			t.Error("half-way text render should contain ink")
		}
	})

	t.Run("render nothing", func(t *testing.T) {
		if _, err := execRoot(t, "--config", cfgFile, "render", "-o", "-", "--at", "1000"); err == nil {
			t.Error("render without text should fail")
		}
	})
}
