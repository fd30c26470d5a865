package models

// Chunk is a windowed aggregation of transcript spans.
// It is the unit embedded, indexed and retrieved for a video.
type Chunk struct {
	VideoID  string `json:"video_id"`
	Content  string `json:"content"`
	Position int    `json:"position"` // Order within the video

	// Time range in seconds. StartTime is nil when the chunker could not
	// attribute the text to a caption span.
	StartTime *float64 `json:"start_time,omitempty"`
	EndTime   *float64 `json:"end_time,omitempty"`
}

// HasStart reports whether the chunk carries a start time.
func (c Chunk) HasStart() bool {
	return c.StartTime != nil
}

// ChunkInput is the input structure for storing a chunk with its embedding.
type ChunkInput struct {
	Chunk
	Embedding []float32 `json:"embedding"`
}

// ScoredChunk is a search hit with its similarity score (higher is closer).
type ScoredChunk struct {
	Chunk
	Score float64 `json:"score"`
}

// VideoInfo summarizes an indexed video.
type VideoInfo struct {
	VideoID string `json:"video_id"`
	Chunks  int    `json:"chunks"`
}
