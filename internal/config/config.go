// Package config loads skim's optional YAML settings file.
//
// The file is read from --config when given, otherwise from
// $HOME/.config/skim/config.yaml if it exists. Command-line flags that were set
// explicitly take precedence over file values; that merge happens in cmd/skim.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chriscorrea/skim/internal/counter"
	"github.com/chriscorrea/skim/internal/markdown"
)

// Highlight modes for search output.
const (
	HighlightAuto   = "auto"
	HighlightAlways = "always"
	HighlightNever  = "never"
)

// File mirrors the YAML settings file.
type File struct {
	MaxDepth         int    `yaml:"max_depth"`
	IgnoreCase       bool   `yaml:"ignore_case"`
	Stem             bool   `yaml:"stem"`
	PreviewSentences int    `yaml:"preview_sentences"`
	Counting         string `yaml:"counting"`
	Highlight        string `yaml:"highlight"`
}

// Default returns the settings used when no file is present.
func Default() File {
	return File{
		MaxDepth:         markdown.DefaultMaxDepth,
		PreviewSentences: 3,
		Counting:         "tokens",
		Highlight:        HighlightAuto,
	}
}

// DefaultPath returns $HOME/.config/skim/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".config", "skim", "config.yaml"), nil
}

// Load reads settings from path. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (File, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			slog.Debug("No default config path", "error", err)
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		slog.Debug("No config file, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return File{}, fmt.Errorf("failed to read the config file %q: %w", path, err)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("config file %q: %w", path, err)
	}
	slog.Debug("Config file loaded", "path", path)
	return cfg, nil
}

// Parse decodes YAML settings over the defaults and validates them. Unknown
// keys are rejected.
func Parse(r io.Reader) (File, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (f File) Validate() error {
	if f.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", f.MaxDepth)
	}
	if f.PreviewSentences < 0 {
		return fmt.Errorf("preview_sentences must not be negative, got %d", f.PreviewSentences)
	}
	if _, err := counter.ParseCountingMethod(f.Counting); err != nil {
		return fmt.Errorf("counting: %w", err)
	}
	switch strings.ToLower(f.Highlight) {
	case HighlightAuto, HighlightAlways, HighlightNever:
	default:
		return fmt.Errorf("highlight must be one of auto, always, never; got %q", f.Highlight)
	}
	return nil
}
