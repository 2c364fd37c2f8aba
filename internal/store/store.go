// Package store persists the last applied wallpaper so it can be restored
// without arguments.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/rootwall/internal/runtimepath"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

var (
	// ErrNotFound is returned by Load when nothing has been saved yet.
	ErrNotFound = wallpaper.ErrNoStoredConfig
	// ErrInvalidState wraps every Load error caused by the file's contents.
	ErrInvalidState = errors.New("invalid state file")
)

// Document keys.
const (
	keyPath   = "path"
	keyMode   = "mode"
	keyOffset = "offset"
	keyColor  = "background_color"
)

// Store reads and writes the wallpaper state file.
type Store struct {
	Path string
	// Logger reports fields that were replaced by defaults. Nil discards.
	Logger *slog.Logger
}

var _ wallpaper.Loader = (*Store)(nil)

// New returns a store backed by path.
func New(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// Default returns a store at the standard state location.
func Default() (*Store, error) {
	path, err := runtimepath.StatePath()
	if err != nil {
		return nil, err
	}
	return New(path), nil
}

type document struct {
	Path            string `yaml:"path"`
	Mode            string `yaml:"mode"`
	Offset          []int  `yaml:"offset,omitempty,flow"`
	BackgroundColor string `yaml:"background_color"`
}

// Save writes cfg atomically. The offset is only written for modes that
// accept one and only when it is non-zero.
func (s *Store) Save(cfg wallpaper.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	doc := document{
		Path:            cfg.Path,
		Mode:            cfg.Mode.String(),
		BackgroundColor: cfg.BackgroundColor,
	}
	if cfg.Mode.AcceptsOffset() && cfg.HasOffset() {
		doc.Offset = []int{cfg.OffsetX, cfg.OffsetY}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".wallpaper-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set state file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Load reads the saved config. A missing file returns ErrNotFound. Optional
// keys fall back to defaults; path and mode are required.
func (s *Store) Load() (*wallpaper.Config, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: failed to read: %w", s.Path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidState, s.Path, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: not a mapping", ErrInvalidState, s.Path)
	}

	cfg := wallpaper.DefaultConfig()
	var havePath, haveMode bool
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		switch key {
		case keyPath:
			if val.Kind == yaml.ScalarNode && val.Value != "" {
				cfg.Path = val.Value
				havePath = true
			}
		case keyMode:
			if val.Kind != yaml.ScalarNode || val.Value == "" {
				continue
			}
			mode, err := wallpaper.ParseMode(val.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %s: %w", ErrInvalidState, s.Path, val.Line, keyMode, err)
			}
			cfg.Mode = mode
			haveMode = true
		case keyOffset:
			if x, y, ok := offsetPair(val); ok {
				cfg.OffsetX, cfg.OffsetY = x, y
			}
		case keyColor:
			if val.Kind != yaml.ScalarNode || val.Value == "" {
				continue
			}
			color := strings.TrimPrefix(val.Value, "#")
			if err := wallpaper.ValidateColor(color); err != nil {
				s.logger().Warn("stored background colour ignored",
					"file", s.Path, "line", val.Line, "error", err, "using", wallpaper.DefaultColor)
				continue
			}
			cfg.BackgroundColor = color
		}
	}
	if !havePath {
		return nil, fmt.Errorf("%w: %s: missing %q", ErrInvalidState, s.Path, keyPath)
	}
	if !haveMode {
		return nil, fmt.Errorf("%w: %s: missing %q", ErrInvalidState, s.Path, keyMode)
	}
	if !cfg.Mode.AcceptsOffset() {
		cfg.OffsetX, cfg.OffsetY = 0, 0
	}
	return &cfg, nil
}

// offsetPair reads the first two integers of a sequence.
func offsetPair(node *yaml.Node) (int, int, bool) {
	if node.Kind != yaml.SequenceNode || len(node.Content) < 2 {
		return 0, 0, false
	}
	var out [2]int
	for i := range out {
		item := node.Content[i]
		if item.Kind != yaml.ScalarNode {
			return 0, 0, false
		}
		n, err := strconv.Atoi(item.Value)
		if err != nil {
			return 0, 0, false
		}
		out[i] = n
	}
	return out[0], out[1], true
}
