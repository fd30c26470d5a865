// Package youtube resolves video references and builds YouTube links.
package youtube

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidVideoID is returned for input that is neither an id nor a known URL form.
var ErrInvalidVideoID = errors.New("invalid YouTube URL or video ID")

var (
	bareID     = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	idPatterns = []*regexp.Regexp{
		regexp.MustCompile(`v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`shorts/([a-zA-Z0-9_-]{11})`),
	}
)

// ExtractVideoID returns the 11-character video id from a bare id or a
// watch, youtu.be or shorts URL.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if bareID.MatchString(input) {
		return input, nil
	}
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, input)
}

// WatchURL links to videoID starting at the given second.
func WatchURL(videoID string, seconds int) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", videoID, seconds)
}

// ThumbnailURL returns the default thumbnail image for videoID.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/0.jpg"
}
