package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source is where an effective setting was last written.
type Source struct {
	Kind   SourceKind
	Name   string // for defaults
	File   string
	Line   int
	Column int
}

// LoadResult is the effective settings together with their origins.
type LoadResult struct {
	Config *Config
	// Sources maps Explain paths to the file position that set them.
	Sources map[string]Source
	// Files lists every file read, includes before the files that name them.
	Files []string
}

// LoadWithSources loads the settings file at the standard location.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and everything it includes. A missing file yields
// the defaults; a settings value that fails validation is reported at the
// file position that set it.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{sources: map[string]Source{}, done: map[string]bool{}}

	if _, err := os.Stat(path); err == nil {
		if err := l.load(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := BuildEffectiveConfig(l.raw)
	if err := cfg.Validate(); err != nil {
		return nil, l.locate(err)
	}
	return &LoadResult{Config: cfg, Sources: l.sources, Files: l.files}, nil
}

// loader merges settings files depth first: a file's includes are applied in
// order, then the file itself, so the including file always wins.
type loader struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
	done    map[string]bool
	active  []string
}

func (l *loader) load(path string) error {
	file := canonicalPath(path)
	if slices.Contains(l.active, file) {
		return fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.active, " -> "), file)
	}
	if l.done[file] {
		return nil
	}
	l.done[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var raw RawConfig
	if err := decodeStrict(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	positions, includeAt := settingPositions(&doc, file)

	l.active = append(l.active, file)
	for i, inc := range raw.Include {
		targets, err := includeTargets(file, inc)
		if err != nil {
			at := Source{File: file}
			if i < len(includeAt) {
				at = includeAt[i]
			}
			return fmt.Errorf("%s:%d:%d: include %q: %w", at.File, at.Line, at.Column, inc, err)
		}
		for _, target := range targets {
			if err := l.load(target); err != nil {
				return err
			}
		}
	}
	l.active = l.active[:len(l.active)-1]

	l.raw = l.raw.merge(raw)
	maps.Copy(l.sources, positions)
	l.files = append(l.files, file)
	return nil
}

// locate attaches the position of the offending setting to a ValidationError.
func (l *loader) locate(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) && verr.Path != "" {
		if src, ok := l.sources[verr.Path]; ok {
			verr.Source = src
		}
	}
	return err
}

func decodeStrict(data []byte, out *RawConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// canonicalPath resolves symlinks when it can, so the same file reached
// through two names is only loaded once.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// settingPositions returns the position of every setting in doc, keyed like
// Explain paths, and the position of each include entry in order.
func settingPositions(doc *yaml.Node, file string) (map[string]Source, []Source) {
	out := map[string]Source{}
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return out, nil
	}

	at := func(n *yaml.Node) Source {
		return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
	}
	var includes []Source
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		switch {
		case key == "include" && val.Kind == yaml.SequenceNode:
			for _, item := range val.Content {
				includes = append(includes, at(item))
			}
		case key == "include":
			includes = append(includes, at(val))
		case val.Kind == yaml.MappingNode:
			out[key] = at(val)
			for j := 0; j+1 < len(val.Content); j += 2 {
				out[key+"."+val.Content[j].Value] = at(val.Content[j+1])
			}
		default:
			out[key] = at(val)
		}
	}
	return out, includes
}

// includeTargets resolves an include entry relative to the file naming it. A
// directory expands to its *.yaml and *.yml files in lexical order.
func includeTargets(baseFile, include string) ([]string, error) {
	if include == "" {
		return nil, errors.New("path is empty")
	}
	path, err := expandHome(include)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(baseFile), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}
