package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/prompts"
)

// Condenser rewrites a follow-up question into a standalone one using the
// most recent conversation turns.
type Condenser struct {
	completer Completer
	library   *prompts.Library
	metrics   *metrics.Collector
	logger    *slog.Logger
}

// NewCondenser creates a condenser. collector and logger may be nil.
func NewCondenser(completer Completer, library *prompts.Library, collector *metrics.Collector, logger *slog.Logger) *Condenser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Condenser{
		completer: completer,
		library:   library,
		metrics:   collector,
		logger:    logger,
	}
}

// Condense returns a standalone rewrite of question. Only the last
// models.HistoryWindow turns are shown to the model. A failed model call
// wraps ErrCondense; a blank rewrite returns ErrEmptyRewrite.
func (c *Condenser) Condense(ctx context.Context, question string, history []models.ConversationTurn) (string, error) {
	start := time.Now()
	defer c.metrics.Since(metrics.OpCondense, start)

	prompt, err := c.library.Render(prompts.NameCondense, map[string]any{
		"history":  models.FormatHistory(models.RecentTurns(history)),
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCondense, err)
	}

	out, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCondense, err)
	}

	rewritten := strings.TrimSpace(out)
	if rewritten == "" {
		return "", ErrEmptyRewrite
	}

	c.logger.Debug("condensed question",
		"question", question,
		"standalone", rewritten,
		"turns", len(models.RecentTurns(history)),
		"duration_ms", time.Since(start).Milliseconds())
	return rewritten, nil
}
