package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "rootwall"

// StateDir returns the directory holding the persisted wallpaper. Priority:
// 1) $XDG_STATE_HOME/rootwall (if set and absolute)
// 2) ~/.local/state/rootwall
func StateDir() (string, error) {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// StatePath returns the wallpaper state file path.
func StatePath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wallpaper.yaml"), nil
}

// ConfigDir returns the settings directory. Priority:
// 1) $XDG_CONFIG_HOME/rootwall (if set and absolute)
// 2) ~/.config/rootwall
func ConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// ConfigPath returns the settings file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// xdgDir resolves an XDG base directory. Relative values are invalid per the
// base directory rules and are ignored.
func xdgDir(env, homeRel string) (string, error) {
	if base := os.Getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, homeRel, appName), nil
}
