package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrFatalAPI marks provider errors that cannot succeed on retry
// (billing, quota, authentication). Callers should stop instead of retrying.
var ErrFatalAPI = errors.New("fatal LLM API error")

var fatalMarkers = []string{
	"credit balance",
	"rate limit",
	"quota exceeded",
	"billing",
	"invalid api key",
	"authentication",
	"unauthorized",
}

var fatalStatus = regexp.MustCompile(`\b40[13]\b`)

// isFatalAPIError reports whether err looks like a non-retryable provider error.
func isFatalAPIError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range fatalMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return fatalStatus.MatchString(msg)
}

// wrapFatalError tags fatal provider errors with ErrFatalAPI and returns
// other errors unchanged.
func wrapFatalError(err error) error {
	if !isFatalAPIError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrFatalAPI, err)
}
