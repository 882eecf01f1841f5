package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotDir is returned when the walk root exists but is not a directory.
var ErrNotDir = errors.New("root is not a directory")

// FileInfo holds metadata about a discovered candidate file.
type FileInfo struct {
	// Path is the root-joined path and doubles as the index key.
	Path string
	// RelPath is slash-separated and relative to the walk root.
	RelPath string
	Size    int64
}

// Failure records an entry the walk could not visit.
type Failure struct {
	Path string
	Err  error
}

// Options controls which files are emitted.
type Options struct {
	// Pattern is a glob relative to the root. Empty means DefaultPattern.
	Pattern string
	// Recursive lets "**" span any number of directories.
	Recursive bool
	// Excludes replaces DefaultExcludes when non-nil.
	Excludes []string
}

// Result is everything one walk discovered, in lexical traversal order.
type Result struct {
	Files    []FileInfo
	Failures []Failure
}

// DefaultExcludes names path segments that are never indexed: version
// control metadata, bytecode caches, dependency trees, virtualenvs and
// environment files.
var DefaultExcludes = []string{
	".git",
	"__pycache__",
	"node_modules",
	".venv",
	"venv",
	".env",
}

// Walk traverses the directory tree rooted at root and returns the regular
// files matching opts.Pattern. Excluded directories are pruned. Entries that
// cannot be read are reported in Result.Failures and never abort the walk;
// only an unusable root or a malformed pattern is returned as an error.
func Walk(root string, opts Options) (*Result, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, root)
	}

	// WalkDir does not descend into a symlinked root, so walk its target and
	// report paths under the root as given.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	keyFor := func(path string) string {
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return path
		}
		return filepath.Join(root, rel)
	}

	glob, err := CompileGlob(opts.Pattern, opts.Recursive)
	if err != nil {
		return nil, err
	}

	excludes := opts.Excludes
	if excludes == nil {
		excludes = DefaultExcludes
	}
	excluded := make(map[string]bool, len(excludes))
	for _, name := range excludes {
		excluded[name] = true
	}

	res := &Result{}
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return err
			}
			res.Failures = append(res.Failures, Failure{Path: keyFor(path), Err: err})
			return nil // keep walking
		}
		if path == walkRoot {
			return nil
		}

		if excluded[d.Name()] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		// Symlinks, sockets and devices are not candidates.
		if !d.Type().IsRegular() {
			return nil
		}

		key := keyFor(path)
		rel, err := filepath.Rel(root, key)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Path: key, Err: err})
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !glob.Match(rel) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			res.Failures = append(res.Failures, Failure{Path: key, Err: err})
			return nil
		}

		res.Files = append(res.Files, FileInfo{
			Path:    key,
			RelPath: rel,
			Size:    fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return res, nil
}
