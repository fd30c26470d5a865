package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/vidqa/internal/config"
	"github.com/raphaelgruber/vidqa/internal/llm"
	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/service"
	"github.com/raphaelgruber/vidqa/internal/transcript"
	"github.com/raphaelgruber/vidqa/internal/youtube"
)

// TurnInput is one prior message of the conversation.
type TurnInput struct {
	Role    string `json:"role" jsonschema:"Either user or assistant"`
	Content string `json:"content" jsonschema:"Message text"`
}

// AskInput defines the input schema for the ask tool.
type AskInput struct {
	Video    string      `json:"video" jsonschema:"YouTube URL or 11-character video id"`
	Question string      `json:"question" jsonschema:"The question to answer from the transcript"`
	History  []TurnInput `json:"history,omitempty" jsonschema:"Earlier turns of the conversation, oldest first"`
}

// CitationOutput is a timestamp the answer draws on.
type CitationOutput struct {
	Seconds   int    `json:"seconds"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// AskOutput is the JSON body returned by the ask tool.
type AskOutput struct {
	VideoID   string           `json:"video_id"`
	Answer    string           `json:"answer"`
	Category  string           `json:"category"`
	Query     string           `json:"query,omitempty"`
	Sources   int              `json:"sources"`
	Citations []CitationOutput `json:"citations"`
}

// NewAskHandler creates the ask tool handler.
// The video must be indexed, or resolvable through deps.Source.
func NewAskHandler(deps *Dependencies, cfg *config.Config) mcp.ToolHandlerFor[AskInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (
		*mcp.CallToolResult, any, error,
	) {
		videoID, err := youtube.ExtractVideoID(input.Video)
		if err != nil {
			return ErrorResult("Invalid video reference", "Pass a YouTube URL or an 11-character video id"), nil, nil
		}
		if input.Question == "" {
			return ErrorResult("Question cannot be empty", "Provide a question about the video"), nil, nil
		}

		history := make([]models.ConversationTurn, 0, len(input.History))
		for _, t := range input.History {
			role := models.Role(t.Role)
			if role != models.RoleUser && role != models.RoleAssistant {
				return ErrorResult("Invalid history role "+t.Role, "Use user or assistant"), nil, nil
			}
			history = append(history, models.ConversationTurn{Role: role, Content: t.Content})
		}

		if deps.Source != nil && deps.Ingest != nil {
			if _, err := deps.Ingest.EnsureIndexed(ctx, videoID, deps.Source, false, nil); err != nil {
				if errors.Is(err, transcript.ErrUnavailable) {
					deps.Logger.Warn("video not indexed", "video_id", videoID, "error", err)
					return ErrorResult("Transcript unavailable for "+videoID, "Ingest the transcript first with the ingest tool"), nil, nil
				}
				deps.Logger.Error("indexing failed", "video_id", videoID, "error", err)
				return ErrorResult(askFailure(err)), nil, nil
			}
		}

		retriever := service.NewVectorRetriever(deps.Index, deps.Embedder, videoID, cfg.TopK)
		answerer, err := service.NewAnswerer(retriever, deps.Completer, service.ConfigFrom(*cfg, deps.Metrics, deps.Logger))
		if err != nil {
			return nil, nil, err
		}

		ans, err := answerer.Answer(ctx, input.Question, history)
		if err != nil {
			deps.Logger.Error("ask failed", "video_id", videoID, "error", err)
			return ErrorResult(askFailure(err)), nil, nil
		}

		out := AskOutput{
			VideoID:   videoID,
			Answer:    ans.Text,
			Category:  string(ans.Category),
			Sources:   len(ans.Documents),
			Citations: make([]CitationOutput, len(ans.Citations)),
		}
		if ans.Query != input.Question {
			out.Query = ans.Query
		}
		for i, c := range ans.Citations {
			out.Citations[i] = CitationOutput{
				Seconds:   c.Seconds,
				Timestamp: c.Formatted,
				URL:       youtube.WatchURL(videoID, c.Seconds),
			}
		}
		return JSONResult(out), nil, nil
	}
}

// askFailure maps answering errors to a message and recovery hint.
func askFailure(err error) (string, string) {
	switch {
	case errors.Is(err, llm.ErrFatalAPI):
		return "Model provider rejected the request", "Check API credentials, quota and billing"
	case errors.Is(err, service.ErrCondense):
		return "Could not rewrite the follow-up question", "Ask a self-contained question or retry"
	case errors.Is(err, service.ErrRetrieval):
		return "Transcript search failed", "Check the index and embedding backend"
	case errors.Is(err, service.ErrGeneration):
		return "Answer generation failed", "Check the language model backend"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out", "Retry with a simpler question"
	default:
		return "Failed to answer question", err.Error()
	}
}
