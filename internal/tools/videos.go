package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/youtube"
)

// ListVideosInput defines the input schema for the list_videos tool.
type ListVideosInput struct{}

// VideoOutput describes one indexed video.
type VideoOutput struct {
	VideoID   string `json:"video_id"`
	Chunks    int    `json:"chunks"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// NewListVideosHandler creates the list_videos tool handler.
func NewListVideosHandler(deps *Dependencies) mcp.ToolHandlerFor[ListVideosInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListVideosInput) (
		*mcp.CallToolResult, any, error,
	) {
		videos, err := deps.Index.ListVideos(ctx)
		if err != nil {
			deps.Logger.Error("list videos failed", "error", err)
			return ErrorResult("Failed to list videos", "Index may be unavailable"), nil, nil
		}
		return JSONResult(videoOutputs(videos)), nil, nil
	}
}

func videoOutputs(videos []models.VideoInfo) []VideoOutput {
	out := make([]VideoOutput, len(videos))
	for i, v := range videos {
		out[i] = VideoOutput{
			VideoID:   v.VideoID,
			Chunks:    v.Chunks,
			URL:       youtube.WatchURL(v.VideoID, 0),
			Thumbnail: youtube.ThumbnailURL(v.VideoID),
		}
	}
	return out
}
