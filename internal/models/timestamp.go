package models

import (
	"fmt"
	"math"
	"sort"
)

// Citation is a deduplicated timestamp reference into the source video.
type Citation struct {
	Seconds   int    `json:"seconds"`
	Formatted string `json:"formatted"`
}

// FormatTimestamp renders whole seconds as zero-padded MM:SS.
// Minutes are not wrapped into hours, so 3600 renders as "60:00".
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FloorSeconds truncates a start time to whole seconds.
func FloorSeconds(t float64) int {
	return int(math.Floor(t))
}

// ExtractCitations derives citations from the chunks that fed an answer.
//
// Chunks without a start time are skipped. Citations are keyed by the
// floored start second; when several chunks land on the same second the
// later chunk in docs wins. Output is sorted ascending by Seconds, so no
// two citations share a second.
func ExtractCitations(docs []Chunk) []Citation {
	bySecond := make(map[int]Citation)
	for _, d := range docs {
		if d.StartTime == nil {
			continue
		}
		s := FloorSeconds(*d.StartTime)
		bySecond[s] = Citation{Seconds: s, Formatted: FormatTimestamp(s)}
	}

	citations := make([]Citation, 0, len(bySecond))
	for _, c := range bySecond {
		citations = append(citations, c)
	}
	sort.Slice(citations, func(i, j int) bool {
		return citations[i].Seconds < citations[j].Seconds
	})
	return citations
}
