package walker

import (
	"fmt"
	"path"
	"strings"
)

// DefaultPattern selects every file under the root.
const DefaultPattern = "**/*"

// Glob matches slash-separated relative paths segment by segment. Each
// segment uses path.Match syntax; a "**" segment matches zero or more
// segments when recursive, and exactly one segment otherwise.
type Glob struct {
	pattern   string
	segments  []string
	recursive bool
}

// CompileGlob validates pattern and prepares it for matching.
func CompileGlob(pattern string, recursive bool) (*Glob, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	clean := strings.TrimPrefix(path.Clean(strings.ReplaceAll(pattern, "\\", "/")), "./")
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return nil, fmt.Errorf("glob %q: must be relative to the root", pattern)
	}

	segments := strings.Split(clean, "/")
	for _, seg := range segments {
		if _, err := path.Match(seg, ""); err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
	}
	return &Glob{pattern: pattern, segments: segments, recursive: recursive}, nil
}

// String returns the pattern as given.
func (g *Glob) String() string {
	return g.pattern
}

// Match reports whether rel, a slash-separated path relative to the root,
// is selected by the glob.
func (g *Glob) Match(rel string) bool {
	return matchSegments(g.segments, strings.Split(rel, "/"), g.recursive)
}

func matchSegments(pat, segs []string, recursive bool) bool {
	for len(pat) > 0 {
		p := pat[0]
		if p == "**" {
			if recursive {
				rest := pat[1:]
				for len(rest) > 0 && rest[0] == "**" {
					rest = rest[1:]
				}
				for i := 0; i <= len(segs); i++ {
					if matchSegments(rest, segs[i:], recursive) {
						return true
					}
				}
				return false
			}
			p = "*"
		}
		if len(segs) == 0 {
			return false
		}
		if ok, _ := path.Match(p, segs[0]); !ok {
			return false
		}
		pat, segs = pat[1:], segs[1:]
	}
	return len(segs) == 0
}
