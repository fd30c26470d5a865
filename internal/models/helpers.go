// Package models defines data structures shared by the vidqa ingest and answering paths.
package models

// Seconds returns a pointer to v, for optional chunk timestamps.
func Seconds(v float64) *float64 {
	return &v
}
