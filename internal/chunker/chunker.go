package chunker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/micaelmalta/agentic/internal/index"
)

// DefaultSize is the chunk length in characters.
const DefaultSize = 5000

// ErrOutOfOrder is returned by Reassemble when a source's chunk ids are not
// the sequence 0, 1, 2, ...
var ErrOutOfOrder = errors.New("chunk out of order")

// Chunk is one contiguous slice of a source file, numbered from zero.
type Chunk struct {
	Source  string `json:"source"`
	ChunkID int    `json:"chunk_id"`
	Content string `json:"content"`
}

// Chunker partitions indexed content into fixed-size pieces.
type Chunker struct {
	size int
}

// New creates a chunker emitting chunks of size characters. A size <= 0
// falls back to DefaultSize.
func New(size int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	return &Chunker{size: size}
}

// Size returns the chunk length in characters.
func (c *Chunker) Size() int {
	return c.size
}

// Chunk splits every indexed file whose path contains filePattern (all files
// when filePattern is empty), in index order. The result is never nil.
func (c *Chunker) Chunk(ix *index.Index, filePattern string) []Chunk {
	chunks := []Chunk{}
	for _, f := range ix.Files() {
		if filePattern != "" && !strings.Contains(f.Path, filePattern) {
			continue
		}
		chunks = append(chunks, c.Split(f.Path, f.Content)...)
	}
	return chunks
}

// Split cuts content into ceil(L/size) chunks, L being its character count.
// Boundaries fall between characters, so every chunk is valid UTF-8 and
// concatenating chunks in order yields content exactly. Empty content has
// no chunks.
func (c *Chunker) Split(source, content string) []Chunk {
	var chunks []Chunk
	start, n := 0, 0
	for i := range content {
		if n == c.size {
			chunks = append(chunks, Chunk{Source: source, ChunkID: len(chunks), Content: content[start:i]})
			start, n = i, 0
		}
		n++
	}
	if n > 0 {
		chunks = append(chunks, Chunk{Source: source, ChunkID: len(chunks), Content: content[start:]})
	}
	return chunks
}

// Reassemble rebuilds each source's content from its chunks. Chunks of one
// source must appear in chunk id order; sources may be interleaved.
func Reassemble(chunks []Chunk) (map[string]string, error) {
	builders := make(map[string]*strings.Builder)
	next := make(map[string]int)

	for _, ch := range chunks {
		if ch.ChunkID != next[ch.Source] {
			return nil, fmt.Errorf("%w: %s: got chunk %d, want %d", ErrOutOfOrder, ch.Source, ch.ChunkID, next[ch.Source])
		}
		b, ok := builders[ch.Source]
		if !ok {
			b = &strings.Builder{}
			builders[ch.Source] = b
		}
		b.WriteString(ch.Content)
		next[ch.Source]++
	}

	out := make(map[string]string, len(builders))
	for src, b := range builders {
		out[src] = b.String()
	}
	return out, nil
}
