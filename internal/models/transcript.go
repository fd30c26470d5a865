package models

// TranscriptSpan is one caption segment as delivered by the transcript source.
type TranscriptSpan struct {
	Text     string  `json:"text" yaml:"text"`
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
}

// End returns the time at which the span stops being spoken.
func (s TranscriptSpan) End() float64 {
	return s.Start + s.Duration
}
