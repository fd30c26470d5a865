package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/raphaelgruber/vidqa/internal/models"
)

type topKCall struct {
	Query string
	K     int
}

// fakeRetriever returns canned chunks per query. Unknown queries return
// fallback.
type fakeRetriever struct {
	mu       sync.Mutex
	byQuery  map[string][]models.Chunk
	fallback []models.Chunk
	delay    map[string]time.Duration
	err      error
	calls    []topKCall
}

func (f *fakeRetriever) TopK(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	f.mu.Lock()
	f.calls = append(f.calls, topKCall{Query: query, K: k})
	d := f.delay[query]
	f.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if docs, ok := f.byQuery[query]; ok {
		return docs, nil
	}
	return f.fallback, nil
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) ([]models.Chunk, error) {
	return f.TopK(ctx, query, DefaultTopK)
}

func (f *fakeRetriever) Calls() []topKCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]topKCall(nil), f.calls...)
}

// fakeCompleter answers condense prompts with rewrite and every other prompt
// with answer.
type fakeCompleter struct {
	mu          sync.Mutex
	rewrite     string
	answer      string
	condenseErr error
	answerErr   error
	prompts     []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if strings.Contains(prompt, "Standalone question:") {
		return f.rewrite, f.condenseErr
	}
	return f.answer, f.answerErr
}

func (f *fakeCompleter) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// fakeEmbedder maps known texts to fixed vectors and everything else to
// {len(text), 1}.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	batches int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) vector(text string) []float32 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	return []float32{float32(len(text)), 1}
}

func doc(content string, start float64) models.Chunk {
	return models.Chunk{Content: content, StartTime: models.Seconds(start)}
}
