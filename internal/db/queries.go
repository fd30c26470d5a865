package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// chunkRow is the stored shape of a chunk.
type chunkRow struct {
	VideoID   string   `json:"video_id"`
	Content   string   `json:"content"`
	Position  int      `json:"position"`
	StartTime *float64 `json:"start_time,omitempty"`
	EndTime   *float64 `json:"end_time,omitempty"`
	Score     float64  `json:"score"`
}

func (r chunkRow) toScored() models.ScoredChunk {
	return models.ScoredChunk{
		Chunk: models.Chunk{
			VideoID:   r.VideoID,
			Content:   r.Content,
			Position:  r.Position,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		},
		Score: r.Score,
	}
}

// ChunkRecordID returns the deterministic record id for a chunk position of
// a video, so re-ingesting overwrites instead of duplicating.
func ChunkRecordID(videoID string, position int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(videoID+"#"+strconv.Itoa(position))).String()
}

// AddChunks stores chunks with their embeddings in one query.
func (c *Client) AddChunks(ctx context.Context, chunks []models.ChunkInput) error {
	if len(chunks) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(chunks))
	for _, ch := range chunks {
		row := map[string]any{
			"id":        ChunkRecordID(ch.VideoID, ch.Position),
			"video_id":  ch.VideoID,
			"content":   ch.Content,
			"position":  ch.Position,
			"embedding": ch.Embedding,
		}
		// option<float> fields are omitted rather than set to NULL
		if ch.StartTime != nil {
			row["start_time"] = *ch.StartTime
		}
		if ch.EndTime != nil {
			row["end_time"] = *ch.EndTime
		}
		rows = append(rows, row)
	}

	_, err := surrealdb.Query[any](ctx, c.db, `
		FOR $row IN $rows {
			UPSERT type::record("chunk", $row.id) CONTENT {
				video_id: $row.video_id,
				content: $row.content,
				position: $row.position,
				start_time: $row.start_time,
				end_time: $row.end_time,
				embedding: $row.embedding
			};
		};
	`, map[string]any{"rows": rows})
	if err != nil {
		return fmt.Errorf("add chunks: %w", wrapQueryError(err))
	}
	return nil
}

// SearchChunks returns up to k chunks of videoID nearest to embedding, best first.
// Uses the HNSW index with ef=40.
func (c *Client) SearchChunks(ctx context.Context, videoID string, embedding []float32, k int) ([]models.ScoredChunk, error) {
	if k <= 0 {
		return []models.ScoredChunk{}, nil
	}
	if c.metrics != nil {
		defer c.metrics.Since(metrics.OpIndexSearch, time.Now())
	}

	sql := fmt.Sprintf(`
		SELECT video_id, content, position, start_time, end_time,
			vector::similarity::cosine(embedding, $emb) AS score
		FROM chunk
		WHERE video_id = $video AND embedding <|%d,40|> $emb
		ORDER BY score DESC, position ASC
	`, k)

	results, err := surrealdb.Query[[]chunkRow](ctx, c.db, sql, map[string]any{
		"video": videoID,
		"emb":   embedding,
	})
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return []models.ScoredChunk{}, nil
	}

	rows := (*results)[0].Result
	hits := make([]models.ScoredChunk, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, r.toScored())
	}
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// CountChunks returns the number of chunks stored for videoID.
func (c *Client) CountChunks(ctx context.Context, videoID string) (int, error) {
	results, err := surrealdb.Query[[]struct{ C int }](ctx, c.db, `
		SELECT count() AS c FROM chunk WHERE video_id = $video GROUP ALL
	`, map[string]any{"video": videoID})
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, nil
	}
	return (*results)[0].Result[0].C, nil
}

// DeleteVideo removes every chunk of videoID and returns how many were removed.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) (int, error) {
	n, err := c.CountChunks(ctx, videoID)
	if err != nil {
		return 0, fmt.Errorf("delete video: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	_, err = surrealdb.Query[any](ctx, c.db, `
		DELETE chunk WHERE video_id = $video RETURN NONE
	`, map[string]any{"video": videoID})
	if err != nil {
		return 0, fmt.Errorf("delete video: %w", wrapQueryError(err))
	}
	return n, nil
}

// ListVideos returns indexed videos with their chunk counts.
func (c *Client) ListVideos(ctx context.Context) ([]models.VideoInfo, error) {
	results, err := surrealdb.Query[[]models.VideoInfo](ctx, c.db, `
		SELECT video_id, count() AS chunks FROM chunk GROUP BY video_id ORDER BY video_id
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []models.VideoInfo{}, nil
	}
	return (*results)[0].Result, nil
}
