// Package config holds the engine options and loads them from an optional
// YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/micaelmalta/agentic/internal/chunker"
	"github.com/micaelmalta/agentic/internal/search"
	"github.com/micaelmalta/agentic/internal/walker"
)

// FileName is the project config file looked up in the scan root.
const FileName = "rlm.yaml"

// Config enumerates every tunable of a scan/peek/chunk invocation.
type Config struct {
	// Pattern is the glob filter applied relative to the root.
	Pattern string `yaml:"pattern" json:"pattern"`
	// Recursive lets "**" descend into subdirectories.
	Recursive bool `yaml:"recursive" json:"recursive"`
	// ContextWindow is the characters of context on each side of a peek hit.
	ContextWindow int `yaml:"context_window" json:"context_window"`
	// MaxResults caps the number of peek snippets.
	MaxResults int `yaml:"max_results" json:"max_results"`
	// ChunkSize is fixed and cannot be set from a file.
	ChunkSize int `yaml:"-" json:"chunk_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Pattern:       walker.DefaultPattern,
		Recursive:     true,
		ContextWindow: search.DefaultContextWindow,
		MaxResults:    search.DefaultMaxResults,
		ChunkSize:     chunker.DefaultSize,
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults; a malformed or invalid one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ChunkSize = chunker.DefaultSize

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.Pattern == "" {
		return errors.New("pattern must not be empty")
	}
	if c.ContextWindow < 0 {
		return fmt.Errorf("context_window must be >= 0, got %d", c.ContextWindow)
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("max_results must be > 0, got %d", c.MaxResults)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0, got %d", c.ChunkSize)
	}
	return nil
}

// SearchOptions returns the peek bounds carried by c.
func (c Config) SearchOptions() search.Options {
	return search.Options{ContextWindow: c.ContextWindow, MaxResults: c.MaxResults}
}
