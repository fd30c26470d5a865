package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/vidqa/internal/service"
)

func TestProgressModel(t *testing.T) {
	cancelled := false
	m := newProgressModel("dQw4w9WgXcQ", func() { cancelled = true })

	assert.Contains(t, m.renderContent(), "chunking")

	next, cmd := m.Update(ingestProgressMsg{done: 32, total: 64})
	assert.Nil(t, cmd)
	m = next.(progressModel)
	assert.Contains(t, m.renderContent(), "32/64 chunks")

	next, cmd = m.Update(ingestDoneMsg{result: &service.IngestResult{VideoID: "dQw4w9WgXcQ", Chunks: 64}})
	require.NotNil(t, cmd)
	m = next.(progressModel)
	assert.True(t, m.finished)
	assert.Contains(t, m.renderContent(), "64 chunks")
	assert.False(t, cancelled)
}

func TestProgressModel_Failure(t *testing.T) {
	m := newProgressModel("dQw4w9WgXcQ", func() {})
	next, _ := m.Update(ingestDoneMsg{err: errors.New("embedder down")})

	assert.Contains(t, next.(progressModel).renderContent(), "embedder down")
}

func TestIngestSummary(t *testing.T) {
	assert.Contains(t, ingestSummary(defaultTheme, &service.IngestResult{VideoID: "v", Chunks: 3, Skipped: true}), "already indexed")
	assert.Contains(t, ingestSummary(defaultTheme, &service.IngestResult{VideoID: "v", Chunks: 3}), "v: 3 chunks")
}

func TestRunIngest_PlainOutput(t *testing.T) {
	// go test does not attach stdout to a terminal.
	var buf bytes.Buffer
	res, err := runIngest(context.Background(), &buf, "v", func(ctx context.Context, progress service.ProgressFunc) (*service.IngestResult, error) {
		assert.Nil(t, progress)
		return &service.IngestResult{VideoID: "v", Chunks: 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Chunks)
	assert.Contains(t, buf.String(), "v: 2 chunks")
}
