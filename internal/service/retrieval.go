package service

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/raphaelgruber/vidqa/internal/models"
)

// DefaultProbes are the structural queries used to sample a whole video for
// summaries.
var DefaultProbes = []string{
	"introduction and agenda",
	"main conclusion",
	"key arguments",
}

// Targeted runs a single similarity query.
func Targeted(ctx context.Context, r Retriever, query string, k int) ([]models.Chunk, error) {
	docs, err := r.TopK(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	return docs, nil
}

// Broad runs every probe concurrently with k results each and merges the
// results with MergeChronological. The output does not depend on the order
// in which probes complete.
func Broad(ctx context.Context, r Retriever, probes []string, k int) ([]models.Chunk, error) {
	results := make([][]models.Chunk, len(probes))

	g, gctx := errgroup.WithContext(ctx)
	for i, probe := range probes {
		g.Go(func() error {
			docs, err := r.TopK(gctx, probe, k)
			if err != nil {
				return fmt.Errorf("%w: probe %q: %w", ErrRetrieval, probe, err)
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return MergeChronological(results...), nil
}

// MergeChronological concatenates result sets in argument order, drops chunks
// whose content was already seen (first occurrence wins), and stably sorts the
// remainder by start time. Chunks without a start time go last in merge
// order. Applying it to its own output returns the same sequence.
func MergeChronological(sets ...[]models.Chunk) []models.Chunk {
	seen := make(map[string]struct{})
	var merged []models.Chunk
	for _, set := range sets {
		for _, doc := range set {
			if _, dup := seen[doc.Content]; dup {
				continue
			}
			seen[doc.Content] = struct{}{}
			merged = append(merged, doc)
		}
	}

	slices.SortStableFunc(merged, func(a, b models.Chunk) int {
		switch {
		case a.StartTime == nil && b.StartTime == nil:
			return 0
		case a.StartTime == nil:
			return 1
		case b.StartTime == nil:
			return -1
		}
		switch {
		case *a.StartTime < *b.StartTime:
			return -1
		case *a.StartTime > *b.StartTime:
			return 1
		}
		return 0
	})
	return merged
}
