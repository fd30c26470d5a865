package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/vidqa/internal/service"
	"github.com/raphaelgruber/vidqa/internal/transcript"
	"github.com/raphaelgruber/vidqa/internal/youtube"
)

// IngestInput defines the input schema for the ingest tool.
type IngestInput struct {
	Video string `json:"video" jsonschema:"YouTube URL or 11-character video id"`
	Path  string `json:"path,omitempty" jsonschema:"Transcript file (.json or .yaml). Defaults to the configured transcript directory"`
	Force bool   `json:"force,omitempty" jsonschema:"Re-index even when the video is already indexed"`
}

// NewIngestHandler creates the ingest tool handler.
func NewIngestHandler(deps *Dependencies) mcp.ToolHandlerFor[IngestInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input IngestInput) (
		*mcp.CallToolResult, any, error,
	) {
		videoID, err := youtube.ExtractVideoID(input.Video)
		if err != nil {
			return ErrorResult("Invalid video reference", "Pass a YouTube URL or an 11-character video id"), nil, nil
		}

		var res *service.IngestResult
		if input.Path != "" {
			spans, loadErr := transcript.Load(input.Path)
			if loadErr != nil {
				return ErrorResult("Cannot read transcript "+input.Path, loadErr.Error()), nil, nil
			}
			res, err = deps.Ingest.Ingest(ctx, videoID, spans, nil)
		} else {
			if deps.Source == nil {
				return ErrorResult("No transcript source configured", "Pass path to a transcript file"), nil, nil
			}
			res, err = deps.Ingest.EnsureIndexed(ctx, videoID, deps.Source, input.Force, nil)
		}
		if err != nil {
			deps.Logger.Error("ingest failed", "video_id", videoID, "error", err)
			if errors.Is(err, transcript.ErrUnavailable) {
				return ErrorResult("Transcript unavailable for "+videoID, "Place "+videoID+".json in the transcript directory or pass path"), nil, nil
			}
			return ErrorResult("Ingest failed", err.Error()), nil, nil
		}

		if res.Skipped {
			return TextResult(fmt.Sprintf("Video %s already indexed (%d chunks). Pass force to re-index.", videoID, res.Chunks)), nil, nil
		}
		return TextResult(fmt.Sprintf("Indexed video %s: %d chunks", videoID, res.Chunks)), nil, nil
	}
}
