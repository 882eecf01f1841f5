// Package search finds literal substring occurrences in an index and renders
// them as bounded context snippets.
package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/micaelmalta/agentic/internal/index"
)

const (
	DefaultContextWindow = 200
	DefaultMaxResults    = 20
)

// Options bounds a peek.
type Options struct {
	// ContextWindow is the number of characters kept on each side of a match.
	ContextWindow int
	// MaxResults caps the snippets returned across the whole index.
	MaxResults int
}

// DefaultOptions returns the standard peek bounds.
func DefaultOptions() Options {
	return Options{ContextWindow: DefaultContextWindow, MaxResults: DefaultMaxResults}
}

// Occurrence locates one match: Offset is the byte offset in the file's content.
type Occurrence struct {
	Path   string
	Offset int
}

// Occurrences returns up to limit matches of query, walking files in index
// order and each file left to right. After a hit the cursor moves one
// character forward, so overlapping matches are all reported. A limit <= 0
// or an empty query yields nothing.
func Occurrences(ix *index.Index, query string, limit int) []Occurrence {
	var out []Occurrence
	if query == "" || limit <= 0 {
		return out
	}
	for _, f := range ix.Files() {
		content := f.Content
		start := 0
		for start <= len(content) {
			i := strings.Index(content[start:], query)
			if i < 0 {
				break
			}
			off := start + i
			out = append(out, Occurrence{Path: f.Path, Offset: off})
			if len(out) == limit {
				return out
			}
			_, size := utf8.DecodeRuneInString(content[off:])
			start = off + size
		}
	}
	return out
}

// Peek returns formatted snippets for matches of query. The result is never
// nil and never longer than opts.MaxResults.
func Peek(ix *index.Index, query string, opts Options) []string {
	occs := Occurrences(ix, query, opts.MaxResults)
	results := make([]string, 0, len(occs))
	width := max(opts.ContextWindow, 0)

	for _, o := range occs {
		content, _ := ix.Get(o.Path)
		results = append(results, Snippet(o.Path, content, o.Offset, len(query), width))
	}
	return results
}

// Snippet formats the match of length n at byte offset off as
// "[path]: ...window...", where window extends up to width characters on
// each side of the match, clipped to the content.
func Snippet(path, content string, off, n, width int) string {
	lo := off
	for i := 0; i < width && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(content[:lo])
		lo -= size
	}
	hi := min(off+n, len(content))
	for i := 0; i < width && hi < len(content); i++ {
		_, size := utf8.DecodeRuneInString(content[hi:])
		hi += size
	}
	return fmt.Sprintf("[%s]: ...%s...", path, content[lo:hi])
}
