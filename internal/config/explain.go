package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	display
//	log_level
//	default_mode
//	default_color
//	scaler
//	avif.backend
//	avif.threads
//	max_pixels
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

// Paths lists every path accepted by Explain.
func Paths() []string {
	return []string{
		"display",
		"log_level",
		"default_mode",
		"default_color",
		"scaler",
		"avif.backend",
		"avif.threads",
		"max_pixels",
	}
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch strings.TrimSpace(path) {
	case "display":
		return cfg.Display, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "default_mode":
		return cfg.DefaultMode, nil
	case "default_color":
		return cfg.DefaultColor, nil
	case "scaler":
		return cfg.Scaler, nil
	case "avif":
		return cfg.AVIF, nil
	case "avif.backend":
		return cfg.AVIF.Backend, nil
	case "avif.threads":
		return cfg.AVIF.Threads, nil
	case "max_pixels":
		return cfg.MaxPixels, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
