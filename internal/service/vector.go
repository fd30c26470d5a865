package service

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/vidqa/internal/models"
)

// VectorRetriever answers similarity queries for one video from an Index.
type VectorRetriever struct {
	index    Index
	embedder Embedder
	videoID  string
	k        int
}

// NewVectorRetriever scopes index to videoID. k is the default result count
// used by Retrieve.
func NewVectorRetriever(index Index, embedder Embedder, videoID string, k int) *VectorRetriever {
	return &VectorRetriever{
		index:    index,
		embedder: embedder,
		videoID:  videoID,
		k:        orDefault(k, DefaultTopK),
	}
}

// TopK embeds query and returns the k most similar chunks of the video.
func (r *VectorRetriever) TopK(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	if k <= 0 {
		return []models.Chunk{}, nil
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.index.SearchChunks(ctx, r.videoID, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	docs := make([]models.Chunk, len(scored))
	for i, s := range scored {
		docs[i] = s.Chunk
	}
	return docs, nil
}

// Retrieve calls TopK with the default k.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string) ([]models.Chunk, error) {
	return r.TopK(ctx, query, r.k)
}

// VideoID returns the video this retriever is scoped to.
func (r *VectorRetriever) VideoID() string {
	return r.videoID
}
