package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/parser"
)

// DefaultEmbedBatch is the number of chunks embedded per request.
const DefaultEmbedBatch = 32

// ProgressFunc receives the number of chunks stored so far and the total.
type ProgressFunc func(done, total int)

// IngestResult summarizes the ingestion of one video.
type IngestResult struct {
	VideoID string
	Chunks  int
	// Skipped is true when the index already held the video and nothing was
	// written.
	Skipped bool
}

// IngestService chunks transcripts, embeds the chunks and stores them.
type IngestService struct {
	index     Index
	embedder  Embedder
	chunker   parser.Chunker
	batchSize int
	logger    *slog.Logger
}

// NewIngestService creates a new ingest service.
func NewIngestService(index Index, embedder Embedder, chunker parser.Chunker, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{
		index:     index,
		embedder:  embedder,
		chunker:   chunker,
		batchSize: DefaultEmbedBatch,
		logger:    logger,
	}
}

// Ingest replaces the stored chunks of videoID with chunks built from spans.
// progress may be nil.
//
// Replacement is not atomic: old chunks are deleted before the new ones are
// stored, so a failed store leaves the video unindexed and the next
// EnsureIndexed ingests it again.
func (s *IngestService) Ingest(ctx context.Context, videoID string, spans []models.TranscriptSpan, progress ProgressFunc) (*IngestResult, error) {
	start := time.Now()

	chunks, err := s.chunker.Chunk(videoID, spans)
	if err != nil {
		return nil, fmt.Errorf("chunk transcript: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("chunk transcript %s: no content", videoID)
	}

	inputs := make([]models.ChunkInput, 0, len(chunks))
	for i := 0; i < len(chunks); i += s.batchSize {
		batch := chunks[i:min(i+s.batchSize, len(chunks))]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.Content
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks %d-%d: %w", i, i+len(batch)-1, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embed chunks: got %d vectors for %d chunks", len(vectors), len(batch))
		}

		for j, c := range batch {
			inputs = append(inputs, models.ChunkInput{Chunk: c, Embedding: vectors[j]})
		}
		if progress != nil {
			progress(len(inputs), len(chunks))
		}
	}

	removed, err := s.index.DeleteVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("clear previous chunks: %w", err)
	}
	if err := s.index.AddChunks(ctx, inputs); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	s.logger.Info("ingested video",
		"video_id", videoID,
		"spans", len(spans),
		"chunks", len(inputs),
		"replaced", removed,
		"duration_ms", time.Since(start).Milliseconds())

	return &IngestResult{VideoID: videoID, Chunks: len(inputs)}, nil
}

// EnsureIndexed loads the video from the index when it is already present and
// otherwise fetches its transcript from source and ingests it. force always
// re-ingests.
func (s *IngestService) EnsureIndexed(ctx context.Context, videoID string, source TranscriptSource, force bool, progress ProgressFunc) (*IngestResult, error) {
	if !force {
		n, err := s.index.CountChunks(ctx, videoID)
		if err != nil {
			return nil, fmt.Errorf("count chunks: %w", err)
		}
		if n > 0 {
			s.logger.Debug("video already indexed", "video_id", videoID, "chunks", n)
			return &IngestResult{VideoID: videoID, Chunks: n, Skipped: true}, nil
		}
	}

	spans, err := source.Fetch(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	return s.Ingest(ctx, videoID, spans, progress)
}

// TranscriptSource provides transcript spans for a video.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string) ([]models.TranscriptSpan, error)
}
