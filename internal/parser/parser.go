// Package parser groups transcript spans into timed chunks for indexing.
package parser

import (
	"fmt"

	"github.com/raphaelgruber/vidqa/internal/config"
	"github.com/raphaelgruber/vidqa/internal/models"
)

// Chunker turns an ordered transcript into chunks tagged with time ranges.
type Chunker interface {
	Chunk(videoID string, spans []models.TranscriptSpan) ([]models.Chunk, error)
}

// NewChunker returns the chunker selected by cfg.ChunkPolicy.
func NewChunker(cfg config.Config) (Chunker, error) {
	switch cfg.ChunkPolicy {
	case config.ChunkPolicyWindow, "":
		w, err := NewWindowChunker(WindowConfig{MaxWindowSeconds: cfg.WindowSeconds, MaxChars: cfg.MaxChars})
		if err != nil {
			return nil, err
		}
		return w, nil
	case config.ChunkPolicyRecursive:
		r, err := NewRecursiveChunker(RecursiveConfig{ChunkSize: cfg.ChunkSize, ChunkOverlap: cfg.ChunkOverlap})
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown chunk policy %q", cfg.ChunkPolicy)
	}
}
