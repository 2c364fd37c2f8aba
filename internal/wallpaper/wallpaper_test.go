package wallpaper

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseColor_ShortFormDoublesNibbles(t *testing.T) {
	const digits = "0123456789abcdefABCDEF"
	for i := 0; i < len(digits); i++ {
		s := string([]byte{digits[i], digits[(i+1)%len(digits)], digits[(i+2)%len(digits)]})
		got, err := ParseColor(s)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", s, err)
		}
		want := RGB{R: hexVal(s[0]) * 17, G: hexVal(s[1]) * 17, B: hexVal(s[2]) * 17}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", s, got, want)
		}
	}

	got, err := ParseColor("a0F")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	if got != (RGB{R: 0xaa, G: 0x00, B: 0xff}) {
		t.Fatalf("expected aa00ff, got %s", got.Hex())
	}
}

func TestParseColor_LongFormPairs(t *testing.T) {
	tests := map[string]RGB{
		"000000": {},
		"ffffff": {R: 255, G: 255, B: 255},
		"1a2B3c": {R: 0x1a, G: 0x2b, B: 0x3c},
		"#80ff01": {R: 0x80, G: 0xff, B: 0x01},
	}
	for in, want := range tests {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParseColor_RejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "f", "ff", "ffff", "fffff", "fffffff", "ggg", "12345z", "0x1234", " fff", "#"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Fatalf("ParseColor(%q) expected ErrInvalidColor, got %v", in, err)
		}
	}
}

func TestRGB_X11ScalesTo16Bit(t *testing.T) {
	r, g, b := RGB{R: 0xff, G: 0x80, B: 0}.X11()
	if r != 0xffff || g != 0x8080 || b != 0 {
		t.Fatalf("unexpected X11 channels %#x %#x %#x", r, g, b)
	}
}

func TestParseMode_RoundTripsNames(t *testing.T) {
	for _, name := range ModeNames() {
		m, err := ParseMode(name)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", name, err)
		}
		if m.String() != name {
			t.Fatalf("Mode.String() = %q, want %q", m.String(), name)
		}
	}

	_, err := ParseMode("stretch")
	if !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if !strings.Contains(err.Error(), "center fill max scale tile") {
		t.Fatalf("expected allowed modes in error, got %v", err)
	}
}

func TestMode_AcceptsOffset(t *testing.T) {
	want := map[Mode]bool{
		ModeCenter: true,
		ModeFill:   true,
		ModeMax:    false,
		ModeScale:  false,
		ModeTile:   false,
	}
	for m, ok := range want {
		if m.AcceptsOffset() != ok {
			t.Fatalf("%s.AcceptsOffset() = %v, want %v", m, !ok, ok)
		}
	}
}

type memLoader struct {
	cfg *Config
	err error
}

func (l memLoader) Load() (*Config, error) { return l.cfg, l.err }

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wall.png")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	return real
}

func TestResolve_ImageDefaultsToFill(t *testing.T) {
	path := writeImage(t)

	cfg, err := Resolve(Options{Image: path}, nil)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.Path != path || cfg.Mode != ModeFill || cfg.BackgroundColor != DefaultColor || cfg.HasOffset() {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestResolve_OffsetRejectedForNonOffsetModes(t *testing.T) {
	path := writeImage(t)

	for _, mode := range []string{"max", "scale", "tile"} {
		_, err := Resolve(Options{Image: path, Mode: mode, HasMode: true, HasOffsetX: true}, nil)
		if !errors.Is(err, ErrOffsetNotAllowed) {
			t.Fatalf("mode %s: expected ErrOffsetNotAllowed, got %v", mode, err)
		}
		_, err = Resolve(Options{Image: path, Mode: mode, HasMode: true, OffsetY: 4, HasOffsetY: true}, nil)
		if !errors.Is(err, ErrOffsetNotAllowed) {
			t.Fatalf("mode %s: expected ErrOffsetNotAllowed for y, got %v", mode, err)
		}
	}

	cfg, err := Resolve(Options{Image: path, Mode: "center", HasMode: true, OffsetX: 10, HasOffsetX: true, OffsetY: -5, HasOffsetY: true}, nil)
	if err != nil {
		t.Fatalf("center with offset: %v", err)
	}
	if cfg.OffsetX != 10 || cfg.OffsetY != -5 {
		t.Fatalf("unexpected offsets %d,%d", cfg.OffsetX, cfg.OffsetY)
	}
}

func TestResolve_RestoresStoredConfigWithOverrides(t *testing.T) {
	stored := &Config{Path: "/img/a.jpg", Mode: ModeCenter, OffsetX: 3, OffsetY: 4, BackgroundColor: "123456"}

	cfg, err := Resolve(Options{Color: "#FFF"}, memLoader{cfg: stored})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.Path != "/img/a.jpg" || cfg.Mode != ModeCenter || cfg.OffsetX != 3 || cfg.BackgroundColor != "fff" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	cfg, err = Resolve(Options{Mode: "scale", HasMode: true}, memLoader{cfg: stored})
	if err != nil {
		t.Fatalf("Resolve with mode override: %v", err)
	}
	if cfg.Mode != ModeScale || cfg.HasOffset() {
		t.Fatalf("expected scale without offsets, got %+v", cfg)
	}
}

func TestResolve_MissingStoredConfig(t *testing.T) {
	_, err := Resolve(Options{}, memLoader{err: ErrNoStoredConfig})
	if !errors.Is(err, ErrNoStoredConfig) {
		t.Fatalf("expected ErrNoStoredConfig, got %v", err)
	}
	_, err = Resolve(Options{}, memLoader{})
	if !errors.Is(err, ErrNoStoredConfig) {
		t.Fatalf("expected ErrNoStoredConfig for nil config, got %v", err)
	}
}

func TestResolve_InvalidInputsTouchNothing(t *testing.T) {
	path := writeImage(t)

	if _, err := Resolve(Options{Image: path, Color: "12"}, nil); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if _, err := Resolve(Options{Image: path, Mode: "zoom", HasMode: true}, nil); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if _, err := Resolve(Options{Image: filepath.Join(t.TempDir(), "missing.png")}, nil); err == nil {
		t.Fatalf("expected error for missing image")
	}
}
