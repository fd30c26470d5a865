package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/raphaelgruber/vidqa/internal/models"
)

// RecursiveConfig defines character-budget chunking parameters.
type RecursiveConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

// DefaultRecursiveConfig returns sensible defaults.
func DefaultRecursiveConfig() RecursiveConfig {
	return RecursiveConfig{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}
}

// RecursiveChunker splits the joined transcript with a recursive character
// splitter, preferring caption boundaries. Each chunk's time range is taken
// from the spans covering its first and last character.
type RecursiveChunker struct {
	splitter textsplitter.RecursiveCharacter
}

// NewRecursiveChunker creates a recursive chunker.
func NewRecursiveChunker(cfg RecursiveConfig) (*RecursiveChunker, error) {
	if cfg.ChunkSize <= 0 || cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("recursive chunker: need 0 <= overlap < size (size=%d, overlap=%d)", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	return &RecursiveChunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
			textsplitter.WithSeparators([]string{"\n", " ", ""}),
		),
	}, nil
}

// Chunk implements Chunker.
func (r *RecursiveChunker) Chunk(videoID string, spans []models.TranscriptSpan) ([]models.Chunk, error) {
	if len(spans) == 0 {
		return nil, nil
	}

	// Spans are joined one per line; offsets[i] is where span i begins.
	offsets := make([]int, len(spans))
	var sb strings.Builder
	for i, s := range spans {
		if i > 0 {
			sb.WriteByte('\n')
		}
		offsets[i] = sb.Len()
		sb.WriteString(s.Text)
	}
	text := sb.String()

	parts, err := r.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split transcript: %w", err)
	}

	chunks := make([]models.Chunk, 0, len(parts))
	cursor := 0
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c := models.Chunk{
			VideoID:  videoID,
			Content:  strings.ReplaceAll(part, "\n", " "),
			Position: len(chunks),
		}

		// Overlapping chunks start after the previous chunk's start.
		if idx := strings.Index(text[cursor:], part); idx >= 0 {
			first := cursor + idx
			last := first + len(part) - 1
			c.StartTime = models.Seconds(spans[spanAt(offsets, first)].Start)
			c.EndTime = models.Seconds(spans[spanAt(offsets, last)].End())
			cursor = first + 1
		}
		chunks = append(chunks, c)
	}

	return chunks, nil
}

// spanAt returns the index of the span containing byte offset pos.
func spanAt(offsets []int, pos int) int {
	i := sort.Search(len(offsets), func(i int) bool { return offsets[i] > pos })
	if i == 0 {
		return 0
	}
	return i - 1
}
