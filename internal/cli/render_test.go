package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/prompts"
	"github.com/raphaelgruber/vidqa/internal/service"
)

func TestPrintAnswer(t *testing.T) {
	ans := &service.Answer{
		Text: "Ten dollars a month.",
		Citations: []models.Citation{
			{Seconds: 5, Formatted: "00:05"},
			{Seconds: 65, Formatted: "01:05"},
			{Seconds: 125, Formatted: "02:05"},
			{Seconds: 3600, Formatted: "60:00"},
		},
	}

	var buf bytes.Buffer
	printAnswer(&buf, defaultTheme, "dQw4w9WgXcQ", ans, 3)
	out := buf.String()

	assert.Contains(t, out, "Ten dollars a month.")
	assert.Contains(t, out, "[00:05]")
	assert.Contains(t, out, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=125s")
	assert.NotContains(t, out, "t=3600s")
	assert.Contains(t, out, "and 1 more")
}

func TestPrintAnswer_Refusal(t *testing.T) {
	var buf bytes.Buffer
	printAnswer(&buf, defaultTheme, "dQw4w9WgXcQ", &service.Answer{Text: prompts.Refusal}, 3)

	assert.Contains(t, buf.String(), prompts.Refusal)
	assert.NotContains(t, buf.String(), "Sources:")
}

func TestPrintStats(t *testing.T) {
	c := metrics.NewCollector()
	c.RecordAnswer("deep")
	c.RecordTiming(metrics.OpRetrieval, 12*time.Millisecond)
	c.RecordLLMUsage(metrics.OpLLMGenerate, 900*time.Millisecond, 1200, 150)

	var buf bytes.Buffer
	printStats(&buf, c.Snapshot())
	out := buf.String()

	assert.Contains(t, out, "deep     1")
	assert.Contains(t, out, "Retrieval:")
	assert.Contains(t, out, "Tokens In:  1200 total")
	assert.NotContains(t, out, "Condense:")
}
