// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/service"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Index     service.Index
	Embedder  service.Embedder
	Completer service.Completer
	Ingest    *service.IngestService
	// Source resolves transcripts for videos that are not indexed yet.
	Source  service.TranscriptSource
	Metrics *metrics.Collector
	Logger  *slog.Logger
}
