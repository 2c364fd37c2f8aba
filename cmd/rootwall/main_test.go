package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/1broseidon/rootwall/internal/config"
	"github.com/1broseidon/rootwall/internal/store"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

func TestParseInterleaved(t *testing.T) {
	tests := []struct {
		args       []string
		positional []string
		mode       string
	}{
		{[]string{"-m", "tile", "a.png"}, []string{"a.png"}, "tile"},
		{[]string{"a.png", "-m", "max"}, []string{"a.png"}, "max"},
		{[]string{"a.png", "b.png"}, []string{"a.png", "b.png"}, ""},
		{nil, nil, ""},
	}
	for _, tt := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		mode := fs.String("m", "", "")
		got, err := parseInterleaved(fs, tt.args)
		if err != nil {
			t.Fatalf("parseInterleaved(%v) error: %v", tt.args, err)
		}
		if !reflect.DeepEqual(got, tt.positional) || *mode != tt.mode {
			t.Fatalf("parseInterleaved(%v) = %v, mode %q", tt.args, got, *mode)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", wallpaper.ErrInvalidMode), exitUsage},
		{wallpaper.ErrInvalidColor, exitUsage},
		{wallpaper.ErrOffsetNotAllowed, exitUsage},
		{wallpaper.ErrNoStoredConfig, exitFailure},
		{fmt.Errorf("%w: state.yaml:2: mode: %w", store.ErrInvalidState, wallpaper.ErrInvalidMode), exitFailure},
		{errors.New("cannot open display"), exitFailure},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRunSet_ExitCodes(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	img := filepath.Join(home, "a.png")
	if err := os.WriteFile(img, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		args []string
		want int
	}{
		{[]string{img, img}, exitUsage},
		{[]string{"-q"}, exitUsage},
		{[]string{"-c", "zz", img}, exitUsage},
		{[]string{"-m", "bogus", img}, exitUsage},
		{[]string{"-m", "tile", "-x", "3", img}, exitUsage},
		{[]string{img, "-m", "max", "-y", "1"}, exitUsage},
		// Restoring with nothing stored is a runtime failure.
		{nil, exitFailure},
		{[]string{filepath.Join(home, "missing.png")}, exitFailure},
	}
	for _, tt := range tests {
		if got := runSet(tt.args); got != tt.want {
			t.Fatalf("runSet(%v) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestRunSet_CorruptStateIsFailure(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	state := filepath.Join(home, ".local", "state", "rootwall", "wallpaper.yaml")
	if err := os.MkdirAll(filepath.Dir(state), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(state, []byte("path: /a.png\nmode: stretch\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := runSet(nil); got != exitFailure {
		t.Fatalf("runSet(nil) with corrupt state = %d, want %d", got, exitFailure)
	}
}

func TestPickFormOptions(t *testing.T) {
	v := pickForm{mode: "center", color: "fff", offsetX: "5", offsetY: "0"}
	opts, err := v.options("/a.png")
	if err != nil {
		t.Fatalf("options error: %v", err)
	}
	if !opts.HasMode || opts.Mode != "center" || !opts.HasOffsetX || opts.OffsetX != 5 || opts.HasOffsetY {
		t.Fatalf("unexpected options %+v", opts)
	}

	v = pickForm{mode: "scale", color: "000", offsetX: "9", offsetY: "9"}
	opts, err = v.options("/a.png")
	if err != nil {
		t.Fatalf("options error: %v", err)
	}
	if opts.HasOffsetX || opts.HasOffsetY {
		t.Fatalf("offsets must be dropped for scale: %+v", opts)
	}
}

func TestFormatSource(t *testing.T) {
	if got := formatSource(config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 2, Column: 3}); got != "file:/c.yaml:2:3" {
		t.Fatalf("unexpected %q", got)
	}
	if got := formatSource(config.Source{Kind: config.SourceDefault, Name: "defaults"}); got != "default:defaults" {
		t.Fatalf("unexpected %q", got)
	}
}
