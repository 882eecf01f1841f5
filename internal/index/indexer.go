package index

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/micaelmalta/agentic/internal/walker"
)

// MaxFileSize is the largest file that will be loaded (1 MiB).
const MaxFileSize = 1 << 20

// Reason categorizes why a file was left out of the index.
type Reason string

const (
	ReasonOversized   Reason = "oversized"
	ReasonUndecodable Reason = "undecodable"
	ReasonUnreadable  Reason = "unreadable"
)

// Skip records one file excluded during a load.
type Skip struct {
	Path   string
	Reason Reason
	Size   int64
	Err    error
}

// String renders the skip as a one-line diagnostic.
func (s Skip) String() string {
	switch s.Reason {
	case ReasonOversized:
		return fmt.Sprintf("Skipping %s (exceeds %d byte limit)", s.Path, MaxFileSize)
	case ReasonUndecodable:
		return fmt.Sprintf("Skipping %s (not valid UTF-8 text)", s.Path)
	default:
		return fmt.Sprintf("Skipping %s (%v)", s.Path, s.Err)
	}
}

// Stats reports the outcome of a load.
type Stats struct {
	Loaded     int
	TotalChars int
	Skipped    []Skip
}

// Count returns how many files were skipped for reason r.
func (s *Stats) Count(r Reason) int {
	n := 0
	for _, sk := range s.Skipped {
		if sk.Reason == r {
			n++
		}
	}
	return n
}

// Summary is the human-readable load report.
func (s *Stats) Summary() string {
	return fmt.Sprintf("Loaded %d files into hidden context. Total size: %d chars.", s.Loaded, s.TotalChars)
}

// Config holds the indexer configuration.
type Config struct {
	// Pattern is the glob applied relative to the root.
	Pattern   string
	Recursive bool
	// Excludes overrides walker.DefaultExcludes when non-nil.
	Excludes []string
	// Logger receives one warning per skipped file. Nil discards.
	Logger *slog.Logger
}

// Indexer walks a root directory and loads eligible files into an Index.
type Indexer struct {
	config   Config
	logger   *slog.Logger
	readFile func(name string) ([]byte, error)
}

// New creates a new Indexer with the given configuration.
func New(cfg Config) *Indexer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Indexer{config: cfg, logger: logger, readFile: os.ReadFile}
}

// Load builds a fresh Index from root. Per-file failures are absorbed into
// Stats.Skipped and logged; only an unusable root or pattern is an error.
func (idx *Indexer) Load(root string) (*Index, *Stats, error) {
	res, err := walker.Walk(root, walker.Options{
		Pattern:   idx.config.Pattern,
		Recursive: idx.config.Recursive,
		Excludes:  idx.config.Excludes,
	})
	if err != nil {
		return nil, nil, err
	}

	ix := newIndex(len(res.Files))
	stats := &Stats{}

	for _, f := range res.Failures {
		idx.skip(stats, Skip{Path: f.Path, Reason: ReasonUnreadable, Err: f.Err})
	}

	for _, fi := range res.Files {
		if fi.Size > MaxFileSize {
			idx.skip(stats, Skip{Path: fi.Path, Reason: ReasonOversized, Size: fi.Size})
			continue
		}

		src, err := idx.readFile(fi.Path)
		if err != nil {
			idx.skip(stats, Skip{Path: fi.Path, Reason: ReasonUnreadable, Size: fi.Size, Err: err})
			continue
		}
		// The file may have grown since it was stat'ed.
		if len(src) > MaxFileSize {
			idx.skip(stats, Skip{Path: fi.Path, Reason: ReasonOversized, Size: int64(len(src))})
			continue
		}
		if !utf8.Valid(src) {
			idx.skip(stats, Skip{Path: fi.Path, Reason: ReasonUndecodable, Size: int64(len(src))})
			continue
		}

		content := string(src)
		if !ix.add(fi.Path, content) {
			continue
		}
		stats.Loaded++
		stats.TotalChars += utf8.RuneCountInString(content)
	}

	idx.logger.Debug("index loaded",
		slog.String("root", root),
		slog.Int("files", stats.Loaded),
		slog.Int("chars", stats.TotalChars),
		slog.Int("skipped", len(stats.Skipped)))

	return ix, stats, nil
}

func (idx *Indexer) skip(stats *Stats, s Skip) {
	stats.Skipped = append(stats.Skipped, s)

	attrs := []any{
		slog.String("path", s.Path),
		slog.String("reason", string(s.Reason)),
	}
	switch s.Reason {
	case ReasonOversized:
		attrs = append(attrs, slog.Int64("size", s.Size), slog.Int("limit", MaxFileSize))
	case ReasonUnreadable:
		attrs = append(attrs, slog.String("error", fmt.Sprint(s.Err)))
	}
	idx.logger.Warn(s.String(), attrs...)
}
