package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw on top of the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.DefaultMode != nil {
		cfg.DefaultMode = *raw.DefaultMode
	}
	if raw.DefaultColor != nil {
		cfg.DefaultColor = *raw.DefaultColor
	}
	if raw.Scaler != nil {
		cfg.Scaler = *raw.Scaler
	}
	if raw.AVIF != nil {
		if raw.AVIF.Backend != nil {
			cfg.AVIF.Backend = *raw.AVIF.Backend
		}
		cfg.AVIF.Threads = derefInt(raw.AVIF.Threads, cfg.AVIF.Threads)
	}
	if raw.MaxPixels != nil {
		cfg.MaxPixels = *raw.MaxPixels
	}

	return cfg
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
