package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/rootwall/internal/avif"
	"github.com/1broseidon/rootwall/internal/imaging"
	"github.com/1broseidon/rootwall/internal/paint"
	"github.com/1broseidon/rootwall/internal/runtimepath"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

// AVIFConfig selects the AVIF decoding backend.
type AVIFConfig struct {
	Backend string `yaml:"backend"`
	// Threads bounds BGRA conversion workers; 0 uses every CPU.
	Threads int `yaml:"threads"`
}

// Config holds tool settings. The applied wallpaper itself is not part of it;
// see the store package.
type Config struct {
	// Display overrides $DISPLAY when non-empty.
	Display      string     `yaml:"display"`
	LogLevel     string     `yaml:"log_level"`
	DefaultMode  string     `yaml:"default_mode"`
	DefaultColor string     `yaml:"default_color"`
	Scaler       string     `yaml:"scaler"`
	AVIF         AVIFConfig `yaml:"avif"`
	MaxPixels    uint64     `yaml:"max_pixels"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "warn",
		DefaultMode:  wallpaper.DefaultMode.String(),
		DefaultColor: wallpaper.DefaultColor,
		Scaler:       paint.DefaultScaler,
		AVIF: AVIFConfig{
			Backend: avif.DefaultBackend,
		},
		MaxPixels: imaging.DefaultMaxPixels,
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if !contains(logLevels, c.LogLevel) {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: %s", strings.Join(logLevels, ", "))}
	}
	if _, err := wallpaper.ParseMode(c.DefaultMode); err != nil {
		return &ValidationError{Path: "default_mode", Err: err}
	}
	if err := wallpaper.ValidateColor(strings.TrimPrefix(c.DefaultColor, "#")); err != nil {
		return &ValidationError{Path: "default_color", Err: err}
	}
	if _, err := paint.ParseScaler(c.Scaler); err != nil {
		return &ValidationError{Path: "scaler", Err: err}
	}
	if _, err := avif.NewCodec(c.AVIF.Backend); err != nil {
		return &ValidationError{Path: "avif.backend", Err: err}
	}
	if c.AVIF.Threads < 0 {
		return &ValidationError{Path: "avif.threads", Err: fmt.Errorf("threads must be >= 0")}
	}
	if c.MaxPixels == 0 {
		return &ValidationError{Path: "max_pixels", Err: fmt.Errorf("max_pixels must be > 0")}
	}
	return nil
}

// Mode returns the parsed default mode.
func (c *Config) Mode() wallpaper.Mode {
	mode, err := wallpaper.ParseMode(c.DefaultMode)
	if err != nil {
		return wallpaper.DefaultMode
	}
	return mode
}

// Color returns the default colour without a leading '#', lowercased.
func (c *Config) Color() string {
	return strings.ToLower(strings.TrimPrefix(c.DefaultColor, "#"))
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadOptions returns the decoder settings.
func (c *Config) LoadOptions() paint.LoadOptions {
	return paint.LoadOptions{
		AVIFBackend: c.AVIF.Backend,
		Threads:     c.AVIF.Threads,
		MaxPixels:   c.MaxPixels,
	}
}

// SaveDefaults records mode and color as default_mode and default_color in
// the settings file at path, creating the file when it is missing. Every
// other key, include and comment in the file is kept.
func SaveDefaults(path, mode, color string) error {
	color = strings.TrimPrefix(color, "#")
	check := DefaultConfig()
	check.DefaultMode, check.DefaultColor = mode, color
	if err := check.Validate(); err != nil {
		return err
	}

	var doc yaml.Node
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%s: failed to parse yaml: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("%s: failed to read: %w", path, err)
	}
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	if len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	root := doc.Content[0]
	if doc.Kind != yaml.DocumentNode || root.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: settings must be a mapping", path)
	}
	setScalar(root, "default_mode", mode)
	setScalar(root, "default_color", color)

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setScalar replaces the value of key in mapping m, or appends the pair.
func setScalar(m *yaml.Node, key, value string) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			node.LineComment = m.Content[i+1].LineComment
			m.Content[i+1] = node
			return
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, node)
}

func DefaultConfigPath() (string, error) {
	return runtimepath.ConfigPath()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
