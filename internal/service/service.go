// Package service implements question answering over indexed video transcripts
// and the ingestion pipeline that builds the index.
package service

import (
	"context"

	"github.com/raphaelgruber/vidqa/internal/models"
)

// Retriever returns transcript chunks similar to a query, most similar first.
type Retriever interface {
	// TopK returns at most k chunks for query.
	TopK(ctx context.Context, query string, k int) ([]models.Chunk, error)
	// Retrieve returns chunks using the retriever's configured default k.
	Retrieve(ctx context.Context, query string) ([]models.Chunk, error)
}

// Completer turns a prompt into model text. Each call is independent; any
// conversational context must be carried by the prompt itself.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder produces vectors for queries and documents.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Index stores embedded chunks per video.
type Index interface {
	AddChunks(ctx context.Context, chunks []models.ChunkInput) error
	SearchChunks(ctx context.Context, videoID string, embedding []float32, k int) ([]models.ScoredChunk, error)
	CountChunks(ctx context.Context, videoID string) (int, error)
	DeleteVideo(ctx context.Context, videoID string) (int, error)
	ListVideos(ctx context.Context) ([]models.VideoInfo, error)
}
