package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawAVIF struct {
	Backend *string `yaml:"backend"`
	Threads *int    `yaml:"threads"`
}

// RawConfig is one settings file as written. Nil fields were not set.
type RawConfig struct {
	Include      IncludeList `yaml:"include"`
	Display      *string     `yaml:"display"`
	LogLevel     *string     `yaml:"log_level"`
	DefaultMode  *string     `yaml:"default_mode"`
	DefaultColor *string     `yaml:"default_color"`
	Scaler       *string     `yaml:"scaler"`
	AVIF         *RawAVIF    `yaml:"avif"`
	MaxPixels    *uint64     `yaml:"max_pixels"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.DefaultMode != nil {
		out.DefaultMode = overlay.DefaultMode
	}
	if overlay.DefaultColor != nil {
		out.DefaultColor = overlay.DefaultColor
	}
	if overlay.Scaler != nil {
		out.Scaler = overlay.Scaler
	}
	if overlay.AVIF != nil {
		var base RawAVIF
		if out.AVIF != nil {
			base = *out.AVIF
		}
		merged := mergeRawAVIF(base, *overlay.AVIF)
		out.AVIF = &merged
	}
	if overlay.MaxPixels != nil {
		out.MaxPixels = overlay.MaxPixels
	}

	return out
}

func mergeRawAVIF(base RawAVIF, overlay RawAVIF) RawAVIF {
	out := base
	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.Threads != nil {
		out.Threads = overlay.Threads
	}
	return out
}
