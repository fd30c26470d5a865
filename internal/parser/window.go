package parser

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/vidqa/internal/models"
)

// WindowConfig defines time-window chunking parameters.
type WindowConfig struct {
	// MaxWindowSeconds closes a window once it spans at least this long.
	MaxWindowSeconds float64
	// MaxChars closes a window once its text reaches this many characters.
	MaxChars int
}

// DefaultWindowConfig returns the defaults used for long-form video.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		MaxWindowSeconds: 120,
		MaxChars:         4000,
	}
}

// WindowChunker groups consecutive spans into time windows. A window is
// flushed after the span that makes it reach either limit; the remainder
// is flushed as a final, possibly shorter, window.
type WindowChunker struct {
	cfg WindowConfig
}

// NewWindowChunker creates a window chunker.
func NewWindowChunker(cfg WindowConfig) (*WindowChunker, error) {
	if cfg.MaxWindowSeconds <= 0 || cfg.MaxChars <= 0 {
		return nil, fmt.Errorf("window chunker: limits must be positive (seconds=%v, chars=%d)", cfg.MaxWindowSeconds, cfg.MaxChars)
	}
	return &WindowChunker{cfg: cfg}, nil
}

// Chunk implements Chunker.
func (w *WindowChunker) Chunk(videoID string, spans []models.TranscriptSpan) ([]models.Chunk, error) {
	var (
		chunks []models.Chunk
		buf    []string
		chars  int
		start  float64
		end    float64
	)

	flush := func() {
		chunks = append(chunks, models.Chunk{
			VideoID:   videoID,
			Content:   strings.Join(buf, " "),
			Position:  len(chunks),
			StartTime: models.Seconds(start),
			EndTime:   models.Seconds(end),
		})
		buf = buf[:0]
		chars = 0
	}

	for _, s := range spans {
		if len(buf) == 0 {
			start = s.Start
		}
		buf = append(buf, s.Text)
		chars += len(s.Text)
		end = s.End()

		if end-start >= w.cfg.MaxWindowSeconds || chars >= w.cfg.MaxChars {
			flush()
		}
	}
	if len(buf) > 0 {
		flush()
	}

	return chunks, nil
}
