// Package memory provides an in-process chunk index with brute-force cosine search.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/raphaelgruber/vidqa/internal/models"
)

// Store keeps chunks and their embeddings per video. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	videos map[string][]models.ChunkInput
}

// New creates an empty store.
func New() *Store {
	return &Store{videos: make(map[string][]models.ChunkInput)}
}

// AddChunks stores chunks in their videos' indexes. A chunk replaces any
// stored chunk of the same video and position.
func (s *Store) AddChunks(ctx context.Context, chunks []models.ChunkInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range chunks {
		if c.VideoID == "" {
			return fmt.Errorf("add chunk %d: missing video id", c.Position)
		}
		if len(c.Embedding) == 0 {
			return fmt.Errorf("add chunk %d: missing embedding", c.Position)
		}
		s.put(c)
	}
	return nil
}

func (s *Store) put(c models.ChunkInput) {
	stored := s.videos[c.VideoID]
	for i := range stored {
		if stored[i].Position == c.Position {
			stored[i] = c
			return
		}
	}
	s.videos[c.VideoID] = append(stored, c)
}

// SearchChunks returns up to k chunks of videoID most similar to embedding,
// best first. Equal scores keep chunk position order.
func (s *Store) SearchChunks(ctx context.Context, videoID string, embedding []float32, k int) ([]models.ScoredChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []models.ScoredChunk{}, nil
	}

	s.mu.RLock()
	stored := s.videos[videoID]
	hits := make([]models.ScoredChunk, 0, len(stored))
	for _, c := range stored {
		if len(c.Embedding) != len(embedding) {
			s.mu.RUnlock()
			return nil, fmt.Errorf("search %s: dimension mismatch: index has %d, query has %d", videoID, len(c.Embedding), len(embedding))
		}
		hits = append(hits, models.ScoredChunk{Chunk: c.Chunk, Score: cosine(c.Embedding, embedding)})
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// CountChunks returns the number of chunks indexed for videoID.
func (s *Store) CountChunks(ctx context.Context, videoID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.videos[videoID]), nil
}

// DeleteVideo removes all chunks of videoID and returns how many were removed.
func (s *Store) DeleteVideo(ctx context.Context, videoID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.videos[videoID])
	delete(s.videos, videoID)
	return n, nil
}

// ListVideos returns indexed videos with their chunk counts, sorted by id.
func (s *Store) ListVideos(ctx context.Context) ([]models.VideoInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	videos := make([]models.VideoInfo, 0, len(s.videos))
	for id, chunks := range s.videos {
		videos = append(videos, models.VideoInfo{VideoID: id, Chunks: len(chunks)})
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].VideoID < videos[j].VideoID })
	return videos, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
