package wallpaper

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrOffsetNotAllowed = errors.New("offset only valid for fill/center modes")
	ErrNoStoredConfig   = errors.New("no stored configuration")
	ErrMissingPath      = errors.New("image path is required")
)

// Config is everything needed to paint one wallpaper. It is built once from
// command-line input or stored state and persisted after a successful render.
type Config struct {
	Path            string
	Mode            Mode
	OffsetX         int
	OffsetY         int
	BackgroundColor string
}

// DefaultConfig returns a config with default mode, offsets and colour and no path.
func DefaultConfig() Config {
	return Config{
		Mode:            DefaultMode,
		BackgroundColor: DefaultColor,
	}
}

// HasOffset reports whether either offset is non-zero.
func (c Config) HasOffset() bool {
	return c.OffsetX != 0 || c.OffsetY != 0
}

// Validate checks the config before any resource is touched.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return ErrMissingPath
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(c.Mode))
	}
	if _, err := ParseColor(c.BackgroundColor); err != nil {
		return err
	}
	if c.HasOffset() && !c.Mode.AcceptsOffset() {
		return fmt.Errorf("%w (mode %s)", ErrOffsetNotAllowed, c.Mode)
	}
	return nil
}

// Options carries user overrides with explicit presence tracking, so an
// offset of zero given on the command line is still an offset.
type Options struct {
	Image      string
	Mode       string
	HasMode    bool
	OffsetX    int
	OffsetY    int
	HasOffsetX bool
	HasOffsetY bool
	Color      string
}

func (o Options) hasOffset() bool {
	return o.HasOffsetX || o.HasOffsetY
}

// Loader supplies the last persisted config.
// Implementations return ErrNoStoredConfig when nothing was stored yet.
type Loader interface {
	Load() (*Config, error)
}

// Resolve builds the config to render from user options. Without an image the
// stored config is restored and the options act as overrides.
func Resolve(opts Options, loader Loader) (Config, error) {
	if opts.Color != "" {
		if err := ValidateColor(strings.TrimPrefix(opts.Color, "#")); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if opts.Image != "" {
		path, err := resolvePath(opts.Image)
		if err != nil {
			return Config{}, err
		}
		cfg = DefaultConfig()
		cfg.Path = path
	} else {
		if loader == nil {
			return Config{}, ErrNoStoredConfig
		}
		stored, err := loader.Load()
		if err != nil {
			return Config{}, err
		}
		if stored == nil {
			return Config{}, ErrNoStoredConfig
		}
		cfg = *stored
	}

	if opts.HasMode {
		mode, err := ParseMode(opts.Mode)
		if err != nil {
			return Config{}, err
		}
		if mode != cfg.Mode && !mode.AcceptsOffset() {
			cfg.OffsetX, cfg.OffsetY = 0, 0
		}
		cfg.Mode = mode
	}

	if opts.hasOffset() {
		if !cfg.Mode.AcceptsOffset() {
			return Config{}, fmt.Errorf("%w (mode %s)", ErrOffsetNotAllowed, cfg.Mode)
		}
		if opts.HasOffsetX {
			cfg.OffsetX = opts.OffsetX
		}
		if opts.HasOffsetY {
			cfg.OffsetY = opts.OffsetY
		}
	}

	if opts.Color != "" {
		cfg.BackgroundColor = strings.ToLower(strings.TrimPrefix(opts.Color, "#"))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	return real, nil
}
