package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micaelmalta/agentic/internal/index"
)

func TestPeek_ScenarioFindsDefinition(t *testing.T) {
	ix := index.Of(index.File{Path: "/proj/a.py", Content: "def foo():\n    pass\n"})

	got := Peek(ix, "def ", DefaultOptions())

	require.Len(t, got, 1)
	assert.Contains(t, got[0], "def foo():")
	assert.Equal(t, "[/proj/a.py]: ...def foo():\n    pass\n...", got[0])
}

func TestPeek_AbsentQueryIsEmpty(t *testing.T) {
	ix := index.Of(index.File{Path: "a", Content: "hello"})

	got := Peek(ix, "ZZZZNOTFOUND", DefaultOptions())
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Peek(nil, "hello", DefaultOptions()))
	assert.Empty(t, Peek(ix, "", DefaultOptions()))
}

func TestPeek_OverlappingMatches(t *testing.T) {
	ix := index.Of(index.File{Path: "f", Content: "aaaa"})

	occs := Occurrences(ix, "aa", 100)
	assert.Equal(t, []Occurrence{{"f", 0}, {"f", 1}, {"f", 2}}, occs)

	got := Peek(ix, "aa", Options{ContextWindow: 0, MaxResults: 20})
	assert.Equal(t, []string{"[f]: ...aa...", "[f]: ...aa...", "[f]: ...aa..."}, got)
}

func TestPeek_WindowBounds(t *testing.T) {
	content := strings.Repeat("x", 10) + "NEEDLE" + strings.Repeat("y", 10)
	ix := index.Of(index.File{Path: "f", Content: content})

	tests := []struct {
		name   string
		window int
		want   string
	}{
		{name: "zero", window: 0, want: "NEEDLE"},
		{name: "narrow", window: 3, want: "xxxNEEDLEyyy"},
		{name: "clipped", window: 200, want: content},
		{name: "negative treated as zero", window: -5, want: "NEEDLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Peek(ix, "NEEDLE", Options{ContextWindow: tt.window, MaxResults: 1})
			require.Len(t, got, 1)
			assert.Equal(t, "[f]: ..."+tt.want+"...", got[0])
		})
	}
}

func TestPeek_WindowCountsCharacters(t *testing.T) {
	ix := index.Of(index.File{Path: "f", Content: "ééé-x-ü日本"})

	got := Peek(ix, "x", Options{ContextWindow: 2, MaxResults: 5})
	require.Len(t, got, 1)
	assert.Equal(t, "[f]: ...é-x-ü...", got[0])

	occs := Occurrences(ix, "日", 5)
	require.Len(t, occs, 1)
	assert.Equal(t, strings.Index("ééé-x-ü日本", "日"), occs[0].Offset)
}

func TestPeek_GlobalResultCap(t *testing.T) {
	var files []index.File
	for i := range 5 {
		files = append(files, index.File{
			Path:    fmt.Sprintf("f%d", i),
			Content: strings.Repeat("hit ", 10),
		})
	}
	ix := index.Of(files...)

	got := Peek(ix, "hit", DefaultOptions())
	assert.Len(t, got, DefaultMaxResults)
	// 10 hits per file: the cap is reached inside the second file.
	assert.True(t, strings.HasPrefix(got[9], "[f0]"))
	assert.True(t, strings.HasPrefix(got[10], "[f1]"))
	assert.True(t, strings.HasPrefix(got[19], "[f1]"))

	assert.Len(t, Peek(ix, "hit", Options{ContextWindow: 10, MaxResults: 3}), 3)
	assert.Empty(t, Peek(ix, "hit", Options{ContextWindow: 10, MaxResults: 0}))
}

func TestPeek_FollowsIndexOrder(t *testing.T) {
	ix := index.Of(
		index.File{Path: "second", Content: "no match"},
		index.File{Path: "zeta", Content: "key"},
		index.File{Path: "alpha", Content: "key"},
	)

	got := Peek(ix, "key", DefaultOptions())
	assert.Equal(t, []string{"[zeta]: ...key...", "[alpha]: ...key..."}, got)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "[p]: ...bcd...", Snippet("p", "abcde", 2, 1, 1))
	assert.Equal(t, "[p]: ...ab...", Snippet("p", "abcde", 0, 1, 1))
	assert.Equal(t, "[p]: ...de...", Snippet("p", "abcde", 4, 1, 1))
}
