package index

import "unicode/utf8"

// File is one indexed file: its path key and full decoded text.
type File struct {
	Path    string
	Content string
}

// Len returns the content length in characters.
func (f File) Len() int {
	return utf8.RuneCountInString(f.Content)
}

// Index is an insertion-ordered mapping from path to content. It is built
// once by an Indexer (or Of) and is read-only afterwards; a nil *Index
// behaves as an empty one.
type Index struct {
	files []File
	pos   map[string]int
}

// Of builds an index from files in the given order. A repeated path keeps
// its first occurrence.
func Of(files ...File) *Index {
	ix := newIndex(len(files))
	for _, f := range files {
		ix.add(f.Path, f.Content)
	}
	return ix
}

func newIndex(capacity int) *Index {
	return &Index{
		files: make([]File, 0, capacity),
		pos:   make(map[string]int, capacity),
	}
}

func (ix *Index) add(path, content string) bool {
	if _, ok := ix.pos[path]; ok {
		return false
	}
	ix.pos[path] = len(ix.files)
	ix.files = append(ix.files, File{Path: path, Content: content})
	return true
}

// Get returns the content stored for path.
func (ix *Index) Get(path string) (string, bool) {
	if ix == nil {
		return "", false
	}
	i, ok := ix.pos[path]
	if !ok {
		return "", false
	}
	return ix.files[i].Content, true
}

// Files returns the indexed files in insertion order.
func (ix *Index) Files() []File {
	if ix == nil {
		return nil
	}
	out := make([]File, len(ix.files))
	copy(out, ix.files)
	return out
}

// Paths returns the indexed paths in insertion order.
func (ix *Index) Paths() []string {
	if ix == nil {
		return nil
	}
	out := make([]string, len(ix.files))
	for i, f := range ix.files {
		out[i] = f.Path
	}
	return out
}

// Len returns the number of indexed files.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.files)
}

// TotalChars returns the summed character length of all indexed content.
func (ix *Index) TotalChars() int {
	if ix == nil {
		return 0
	}
	total := 0
	for _, f := range ix.files {
		total += f.Len()
	}
	return total
}
