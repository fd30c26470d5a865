package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/vidqa/internal/models"
)

func span(text string, start, dur float64) models.TranscriptSpan {
	return models.TranscriptSpan{Text: text, Start: start, Duration: dur}
}

func TestWindowChunker(t *testing.T) {
	tests := []struct {
		name       string
		cfg        WindowConfig
		spans      []models.TranscriptSpan
		wantText   []string
		wantStarts []float64
		wantEnds   []float64
	}{
		{
			name:     "empty transcript",
			cfg:      DefaultWindowConfig(),
			spans:    nil,
			wantText: nil,
		},
		{
			name: "flush on window duration",
			cfg:  WindowConfig{MaxWindowSeconds: 30, MaxChars: 1000},
			spans: []models.TranscriptSpan{
				span("one", 0, 10), span("two", 10, 10), span("three", 20, 10),
				span("four", 30, 10), span("five", 40, 5),
			},
			wantText:   []string{"one two three", "four five"},
			wantStarts: []float64{0, 30},
			wantEnds:   []float64{30, 45},
		},
		{
			name: "flush on char budget",
			cfg:  WindowConfig{MaxWindowSeconds: 1000, MaxChars: 8},
			spans: []models.TranscriptSpan{
				span("abcd", 0, 1), span("efgh", 1, 1), span("ij", 2, 1),
			},
			wantText:   []string{"abcd efgh", "ij"},
			wantStarts: []float64{0, 2},
			wantEnds:   []float64{2, 3},
		},
		{
			name:       "single long span",
			cfg:        WindowConfig{MaxWindowSeconds: 5, MaxChars: 100},
			spans:      []models.TranscriptSpan{span("monologue", 12.5, 60)},
			wantText:   []string{"monologue"},
			wantStarts: []float64{12.5},
			wantEnds:   []float64{72.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewWindowChunker(tt.cfg)
			require.NoError(t, err)

			chunks, err := c.Chunk("vid", tt.spans)
			require.NoError(t, err)
			require.Len(t, chunks, len(tt.wantText))

			for i, ch := range chunks {
				assert.Equal(t, tt.wantText[i], ch.Content)
				assert.Equal(t, i, ch.Position)
				assert.Equal(t, "vid", ch.VideoID)
				require.NotNil(t, ch.StartTime)
				require.NotNil(t, ch.EndTime)
				assert.Equal(t, tt.wantStarts[i], *ch.StartTime)
				assert.Equal(t, tt.wantEnds[i], *ch.EndTime)
			}
		})
	}
}

func TestWindowChunker_DefaultsKeepEveryWord(t *testing.T) {
	var spans []models.TranscriptSpan
	for i := 0; i < 200; i++ {
		spans = append(spans, span("word", float64(i)*3, 3))
	}
	c, err := NewWindowChunker(DefaultWindowConfig())
	require.NoError(t, err)

	chunks, err := c.Chunk("vid", spans)
	require.NoError(t, err)

	total := 0
	for _, ch := range chunks {
		total += len(strings.Fields(ch.Content))
		assert.LessOrEqual(t, *ch.EndTime-*ch.StartTime, 120.0+3)
	}
	assert.Equal(t, 200, total)
	assert.Len(t, chunks, 5) // 40 spans of 3s per 120s window
}

func TestNewWindowChunker_Invalid(t *testing.T) {
	_, err := NewWindowChunker(WindowConfig{MaxWindowSeconds: 0, MaxChars: 10})
	assert.Error(t, err)
	_, err = NewWindowChunker(WindowConfig{MaxWindowSeconds: 10, MaxChars: 0})
	assert.Error(t, err)
}
