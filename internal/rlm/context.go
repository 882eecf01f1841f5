// Package rlm sequences one invocation of the engine: a single scan that
// builds the index, followed by any number of peek and chunk calls against it.
package rlm

import (
	"errors"
	"log/slog"

	"github.com/micaelmalta/agentic/internal/chunker"
	"github.com/micaelmalta/agentic/internal/config"
	"github.com/micaelmalta/agentic/internal/index"
	"github.com/micaelmalta/agentic/internal/search"
)

var (
	// ErrNotScanned is returned by Peek and Chunk before Scan has succeeded.
	ErrNotScanned = errors.New("context has not been scanned")
	// ErrAlreadyScanned is returned by a second Scan.
	ErrAlreadyScanned = errors.New("context already scanned")
)

// Context owns the index of one invocation.
type Context struct {
	cfg     config.Config
	logger  *slog.Logger
	chunker *chunker.Chunker

	index *index.Index
	stats *index.Stats
}

// New creates an unscanned Context. A nil logger discards diagnostics.
func New(cfg config.Config, logger *slog.Logger) *Context {
	return &Context{
		cfg:     cfg,
		logger:  logger,
		chunker: chunker.New(cfg.ChunkSize),
	}
}

// Config returns the configuration the context was built with.
func (c *Context) Config() config.Config {
	return c.cfg
}

// Scan loads root into the index and returns the load summary.
func (c *Context) Scan(root string) (string, error) {
	if c.index != nil {
		return "", ErrAlreadyScanned
	}

	ix, stats, err := index.New(index.Config{
		Pattern:   c.cfg.Pattern,
		Recursive: c.cfg.Recursive,
		Logger:    c.logger,
	}).Load(root)
	if err != nil {
		return "", err
	}

	c.index, c.stats = ix, stats
	return stats.Summary(), nil
}

// Index returns the loaded index, or nil before Scan.
func (c *Context) Index() *index.Index {
	return c.index
}

// Stats returns the load statistics, or nil before Scan.
func (c *Context) Stats() *index.Stats {
	return c.stats
}

// Peek searches the index for query. A nil opts uses the configured bounds.
func (c *Context) Peek(query string, opts *search.Options) ([]string, error) {
	if c.index == nil {
		return nil, ErrNotScanned
	}
	o := c.cfg.SearchOptions()
	if opts != nil {
		o = *opts
	}
	return search.Peek(c.index, query, o), nil
}

// Chunk partitions the files whose path contains filePattern.
func (c *Context) Chunk(filePattern string) ([]chunker.Chunk, error) {
	if c.index == nil {
		return nil, ErrNotScanned
	}
	return c.chunker.Chunk(c.index, filePattern), nil
}
