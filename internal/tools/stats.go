package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/vidqa/internal/metrics"
)

// StatsInput defines the input schema for the stats tool.
type StatsInput struct {
	Reset bool `json:"reset,omitempty" jsonschema:"Clear statistics after reading them"`
}

// NewStatsHandler creates the stats tool handler.
func NewStatsHandler(deps *Dependencies) mcp.ToolHandlerFor[StatsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (
		*mcp.CallToolResult, any, error,
	) {
		if deps.Metrics == nil {
			return JSONResult(metrics.Snapshot{}), nil, nil
		}
		snap := deps.Metrics.Snapshot()
		if input.Reset {
			deps.Metrics.Reset()
		}
		return JSONResult(snap), nil, nil
	}
}
