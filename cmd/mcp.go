package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/micaelmalta/agentic/internal/output"
	"github.com/micaelmalta/agentic/internal/rlm"
	"github.com/micaelmalta/agentic/internal/search"
)

func newMCPCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Scan once, then serve peek and chunk as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			rc, summary, err := o.scan(cmd, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), summary)

			return mcpserver.ServeStdio(newMCPServer(rc))
		},
	}
}

func newMCPServer(rc *rlm.Context) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("rlm", version, mcpserver.WithToolCapabilities(false))

	s.AddTool(peekTool(), makePeekHandler(rc))
	s.AddTool(chunkTool(), makeChunkHandler(rc))
	s.AddTool(scanSummaryTool(), makeScanSummaryHandler(rc))

	return s
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func peekTool() mcp.Tool {
	return mcp.NewTool("peek",
		mcp.WithDescription("Find literal occurrences of a string in the indexed files. Returns a JSON array of \"[path]: ...context...\" snippets, overlapping matches included, capped across all files."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Literal substring to search for"),
		),
		mcp.WithNumber("context_window",
			mcp.Description("Characters of context on each side of a match (default 200)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum snippets to return (default 20)"),
		),
	)
}

func chunkTool() mcp.Tool {
	return mcp.NewTool("chunk",
		mcp.WithDescription("Split indexed files into 5000-character chunks for parallel analysis. Returns a JSON array of {source, chunk_id, content}; concatenating a source's chunks in chunk_id order reproduces the file."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("pattern",
			mcp.Description("Only chunk files whose path contains this substring (default: all files)"),
		),
	)
}

func scanSummaryTool() mcp.Tool {
	return mcp.NewTool("scan_summary",
		mcp.WithDescription("Report how many files were loaded into the index and why others were skipped."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

// --- Handler factories ---

func makePeekHandler(rc *rlm.Context) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		cfg := rc.Config()
		opts := search.Options{
			ContextWindow: req.GetInt("context_window", cfg.ContextWindow),
			MaxResults:    req.GetInt("max_results", cfg.MaxResults),
		}
		if opts.ContextWindow < 0 {
			return mcp.NewToolResultError("context_window must be >= 0"), nil
		}
		if opts.MaxResults <= 0 {
			return mcp.NewToolResultError("max_results must be > 0"), nil
		}

		snippets, err := rc.Peek(query, &opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("peek failed: %v", err)), nil
		}
		return jsonResult(snippets, true)
	}
}

func makeChunkHandler(rc *rlm.Context) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		chunks, err := rc.Chunk(req.GetString("pattern", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("chunk failed: %v", err)), nil
		}
		return jsonResult(chunks, false)
	}
}

func makeScanSummaryHandler(rc *rlm.Context) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := rc.Stats()
		if stats == nil {
			return mcp.NewToolResultError("index not loaded"), nil
		}

		var sb bytes.Buffer
		sb.WriteString(stats.Summary())
		sb.WriteByte('\n')
		for _, sk := range stats.Skipped {
			fmt.Fprintf(&sb, "- %s\n", sk)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- Formatting helpers ---

func jsonResult(v any, indent bool) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := output.New(&buf).JSON(v, indent); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
