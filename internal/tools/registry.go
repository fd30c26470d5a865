package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/vidqa/internal/config"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies, cfg *config.Config) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about a YouTube video using only its transcript. Returns the answer with [MM:SS] citations and watch links",
	}, NewAskHandler(deps, cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ingest",
		Description: "Index a video transcript for question answering, from a transcript file or the configured transcript directory",
	}, NewIngestHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_videos",
		Description: "List indexed videos with their chunk counts",
	}, NewListVideosHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Show answering statistics: answers per category, retrieval and model timings, token usage",
	}, NewStatsHandler(deps))
}
