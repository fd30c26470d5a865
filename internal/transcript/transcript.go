// Package transcript loads caption spans for a video.
package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/vidqa/internal/models"
)

// ErrUnavailable is returned when no transcript exists for a video, or the
// transcript holds no spoken text.
var ErrUnavailable = errors.New("transcript unavailable")

// Source supplies ordered transcript spans for a video id.
type Source interface {
	Fetch(ctx context.Context, videoID string) ([]models.TranscriptSpan, error)
}

// document is the object form of a transcript file. A bare array of spans
// is accepted as well.
type document struct {
	VideoID    string                  `json:"video_id" yaml:"video_id"`
	Transcript []models.TranscriptSpan `json:"transcript" yaml:"transcript"`
}

// Load reads spans from a JSON (.json) or YAML (.yaml, .yml) file.
func Load(path string) ([]models.TranscriptSpan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var spans []models.TranscriptSpan
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		spans, err = decodeJSON(data)
	case ".yaml", ".yml":
		spans, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported transcript format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	spans = clean(spans)
	if len(spans) == 0 {
		return nil, fmt.Errorf("%w: %s has no spans", ErrUnavailable, path)
	}
	return spans, nil
}

func decodeJSON(data []byte) ([]models.TranscriptSpan, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var spans []models.TranscriptSpan
		err := json.Unmarshal(data, &spans)
		return spans, err
	}
	var doc document
	err := json.Unmarshal(data, &doc)
	return doc.Transcript, err
}

func decodeYAML(data []byte) ([]models.TranscriptSpan, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var spans []models.TranscriptSpan
		err := root.Decode(&spans)
		return spans, err
	}
	var doc document
	err := root.Decode(&doc)
	return doc.Transcript, err
}

// clean drops spans without spoken text and trims caption whitespace.
func clean(spans []models.TranscriptSpan) []models.TranscriptSpan {
	out := spans[:0]
	for _, s := range spans {
		s.Text = strings.Join(strings.Fields(s.Text), " ")
		if s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// DirSource resolves transcripts stored as <Dir>/<video_id>.{json,yaml,yml}.
type DirSource struct {
	Dir string
}

var extensions = []string{".json", ".yaml", ".yml"}

// Fetch implements Source.
func (d DirSource) Fetch(ctx context.Context, videoID string) ([]models.TranscriptSpan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, ext := range extensions {
		path := filepath.Join(d.Dir, videoID+ext)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, fmt.Errorf("%w: no transcript for %s in %s", ErrUnavailable, videoID, d.Dir)
}
