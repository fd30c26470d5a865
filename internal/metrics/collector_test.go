package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordTiming(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpRetrieval, 10*time.Millisecond)
	c.RecordTiming(OpRetrieval, 30*time.Millisecond)

	snap := c.Snapshot()
	require.NotNil(t, snap.Retrieval)
	assert.Equal(t, int64(2), snap.Retrieval.Count)
	assert.Equal(t, int64(40), snap.Retrieval.TotalTimeMs)
	assert.Equal(t, 20.0, snap.Retrieval.AvgTimeMs)
	assert.Equal(t, int64(10), snap.Retrieval.MinTimeMs)
	assert.Equal(t, int64(30), snap.Retrieval.MaxTimeMs)
	assert.Nil(t, snap.Retrieval.TotalInputTokens)
	assert.Nil(t, snap.Condense, "operations without data are omitted")
}

func TestCollector_RecordLLMUsage(t *testing.T) {
	c := NewCollector()

	c.RecordLLMUsage(OpLLMGenerate, time.Second, 100, 20)
	c.RecordLLMUsage(OpLLMGenerate, time.Second, 300, 40)

	snap := c.Snapshot()
	require.NotNil(t, snap.LLMGenerate)
	require.NotNil(t, snap.LLMGenerate.TotalInputTokens)
	assert.Equal(t, int64(400), *snap.LLMGenerate.TotalInputTokens)
	assert.Equal(t, int64(60), *snap.LLMGenerate.TotalOutputTokens)
	assert.Equal(t, int64(100), *snap.LLMGenerate.MinInputTokens)
	assert.Equal(t, int64(40), *snap.LLMGenerate.MaxOutputTokens)
	assert.Equal(t, 200.0, *snap.LLMGenerate.AvgInputTokens)
}

func TestCollector_AnswersAndReset(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordAnswer("factual")
			c.Since(OpEmbedding, time.Now())
		}()
	}
	wg.Wait()
	c.RecordAnswer("summary")

	snap := c.Snapshot()
	assert.Equal(t, int64(50), snap.Answers["factual"])
	assert.Equal(t, int64(1), snap.Answers["summary"])
	require.NotNil(t, snap.Embedding)
	assert.Equal(t, int64(50), snap.Embedding.Count)

	c.Reset()
	snap = c.Snapshot()
	assert.Empty(t, snap.Answers)
	assert.Nil(t, snap.Embedding)
}

func TestCollector_NilSince(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() { c.Since(OpRetrieval, time.Now()) })
}
