package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id with whitespace", "  dQw4w9WgXcQ\n", "dQw4w9WgXcQ"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extra params", "https://www.youtube.com/watch?list=PL1&v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/a_b-c1234XY", "a_b-c1234XY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVideoID_Invalid(t *testing.T) {
	for _, input := range []string{"", "short", "https://vimeo.com/123456", "dQw4w9WgXcQ!"} {
		t.Run(input, func(t *testing.T) {
			_, err := ExtractVideoID(input)
			assert.ErrorIs(t, err, ErrInvalidVideoID)
		})
	}
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=65s", WatchURL("dQw4w9WgXcQ", 65))
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/0.jpg", ThumbnailURL("dQw4w9WgXcQ"))
}
