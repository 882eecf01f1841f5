package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micaelmalta/agentic/internal/chunker"
	"github.com/micaelmalta/agentic/internal/config"
	"github.com/micaelmalta/agentic/internal/rlm"
)

func scannedContext(t *testing.T) (*rlm.Context, string) {
	t.Helper()
	root := pyProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.bin"), []byte{0xff, 0xfe, 0xfd}, 0o644))

	rc := rlm.New(config.Default(), nil)
	_, err := rc.Scan(root)
	require.NoError(t, err)
	return rc, root
}

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func TestMCPPeekHandler(t *testing.T) {
	rc, root := scannedContext(t)
	h := makePeekHandler(rc)

	text, isErr := callTool(t, h, map[string]any{"query": "def "})
	require.False(t, isErr, text)

	var snippets []string
	require.NoError(t, json.Unmarshal([]byte(text), &snippets))
	require.Len(t, snippets, 1)
	assert.Contains(t, snippets[0], filepath.Join(root, "a.py"))

	text, isErr = callTool(t, h, map[string]any{"query": "s", "max_results": 2.0, "context_window": 0.0})
	require.False(t, isErr, text)
	require.NoError(t, json.Unmarshal([]byte(text), &snippets))
	assert.Len(t, snippets, 2)
}

func TestMCPPeekHandler_Validation(t *testing.T) {
	rc, _ := scannedContext(t)
	h := makePeekHandler(rc)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing query", args: map[string]any{}, want: "query is required"},
		{name: "negative window", args: map[string]any{"query": "x", "context_window": -1.0}, want: "context_window"},
		{name: "zero results", args: map[string]any{"query": "x", "max_results": 0.0}, want: "max_results"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, h, tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestMCPChunkHandler(t *testing.T) {
	rc, root := scannedContext(t)
	h := makeChunkHandler(rc)

	text, isErr := callTool(t, h, map[string]any{})
	require.False(t, isErr, text)

	var chunks []chunker.Chunk
	require.NoError(t, json.Unmarshal([]byte(text), &chunks))
	require.Len(t, chunks, 1)
	assert.Equal(t, filepath.Join(root, "a.py"), chunks[0].Source)

	text, _ = callTool(t, h, map[string]any{"pattern": "no-such-file"})
	assert.Equal(t, "[]", strings.TrimSpace(text))
}

func TestMCPScanSummaryHandler(t *testing.T) {
	rc, root := scannedContext(t)

	text, isErr := callTool(t, makeScanSummaryHandler(rc), nil)
	require.False(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Loaded 1 files"))
	assert.Contains(t, text, filepath.Join(root, "bad.bin"))

	text, isErr = callTool(t, makeScanSummaryHandler(rlm.New(config.Default(), nil)), nil)
	assert.True(t, isErr)
	assert.Contains(t, text, "not loaded")
}

func TestNewMCPServer(t *testing.T) {
	rc, _ := scannedContext(t)
	assert.NotNil(t, newMCPServer(rc))
}
