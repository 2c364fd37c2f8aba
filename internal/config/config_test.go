package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/rootwall/internal/avif"
	"github.com/1broseidon/rootwall/internal/imaging"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Mode() != wallpaper.ModeFill || cfg.Color() != "000000" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.MaxPixels != imaging.DefaultMaxPixels || cfg.AVIF.Backend != avif.BackendSystem {
		t.Fatalf("unexpected decoder defaults %+v", cfg)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "warn" || len(res.Files) != 0 {
		t.Fatalf("expected defaults, got %+v", res)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Scaler != "bilinear" {
		t.Fatalf("expected default scaler, got %q", res.Config.Scaler)
	}
}

func TestLoadFromPath_AllKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		`display: ":1"`,
		`log_level: debug`,
		`default_mode: center`,
		`default_color: "#FFA500"`,
		`scaler: catmull-rom`,
		`avif:`,
		`  backend: bundled`,
		`  threads: 3`,
		`max_pixels: 1000`,
		``,
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" || cfg.Mode() != wallpaper.ModeCenter || cfg.Color() != "ffa500" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
	opts := cfg.LoadOptions()
	if opts.AVIFBackend != avif.BackendBundled || opts.Threads != 3 || opts.MaxPixels != 1000 {
		t.Fatalf("unexpected load options %+v", opts)
	}

	val, src, err := Explain(res, "avif.threads")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val.(int) != 3 || src.Kind != SourceFile || src.Line != 8 {
		t.Fatalf("unexpected explain result %v %+v", val, src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_InvalidValuesHaveSourceContext(t *testing.T) {
	tests := []struct {
		body string
		path string
	}{
		{"log_level: verbose\n", "log_level"},
		{"default_mode: stretch\n", "default_mode"},
		{"default_color: red\n", "default_color"},
		{"scaler: lanczos\n", "scaler"},
		{"avif:\n  backend: aom\n", "avif.backend"},
		{"avif:\n  threads: -1\n", "avif.threads"},
		{"max_pixels: 0\n", "max_pixels"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.body)

			_, err := LoadFromPath(path)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
			if !strings.Contains(err.Error(), path+":") {
				t.Fatalf("expected file:line:col prefix, got %v", err)
			}
		})
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(configD, "10-base.yaml"), "scaler: nearest\navif:\n  threads: 2\n")
	writeFile(t, filepath.Join(configD, "20-override.yaml"), "scaler: approx-bilinear\n")
	writeFile(t, filepath.Join(configD, "notes.txt"), "not yaml")

	// Main file overrides includes.
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"include:",
		"  - config.d",
		"avif:",
		"  backend: bundled",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Scaler != "approx-bilinear" {
		t.Fatalf("expected include order to apply, got %q", res.Config.Scaler)
	}
	if res.Config.AVIF.Threads != 2 || res.Config.AVIF.Backend != avif.BackendBundled {
		t.Fatalf("expected nested avif merge, got %+v", res.Config.AVIF)
	}
	if len(res.Files) != 3 || !strings.HasSuffix(res.Files[2], "config.yaml") {
		t.Fatalf("unexpected load order %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, b, "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestExplain_DefaultsAndUnknownPaths(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, p := range Paths() {
		if _, src, err := Explain(res, p); err != nil || src.Kind != SourceDefault {
			t.Fatalf("Explain(%q) = %+v, %v", p, src, err)
		}
	}
	if _, _, err := Explain(res, "hotkey"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestSaveDefaults_KeepsOtherSettings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "extra.yaml"), "scaler: nearest\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"# display settings",
		"include: extra.yaml",
		"default_mode: fill # picked by hand",
		"avif:",
		"  threads: 2",
		"",
	}, "\n"))

	if err := SaveDefaults(path, "tile", "#ABC"); err != nil {
		t.Fatalf("SaveDefaults: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.DefaultMode != "tile" || cfg.DefaultColor != "ABC" {
		t.Fatalf("defaults not saved: %+v", cfg)
	}
	if cfg.Scaler != "nearest" || cfg.AVIF.Threads != 2 {
		t.Fatalf("other settings lost: %+v", cfg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "# display settings") || !strings.Contains(string(data), "# picked by hand") {
		t.Fatalf("comments lost:\n%s", data)
	}
}

func TestSaveDefaults_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveDefaults(path, "center", "000000"); err != nil {
		t.Fatalf("SaveDefaults: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DefaultMode != "center" || res.Config.DefaultColor != "000000" {
		t.Fatalf("unexpected config %+v", res.Config)
	}
}

func TestSaveDefaults_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveDefaults(path, "stretch", "000"); err == nil {
		t.Fatalf("expected validation error for mode")
	}
	if err := SaveDefaults(path, "fill", "red"); err == nil {
		t.Fatalf("expected validation error for colour")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("nothing should be written on error, stat err=%v", err)
	}
}
