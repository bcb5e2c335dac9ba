package transcript

import (
	"context"
	"errors"
	"fmt"
)

// Snippet is one timed caption line
type Snippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Source retrieves caption snippets for a video, restricted to the given
// languages in preference order.
type Source interface {
	Snippets(ctx context.Context, videoID string, languages []string) ([]Snippet, error)
}

// Failures a Source reports. Fetcher maps each of them to a Kind.
var (
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrInvalidVideoID      = errors.New("invalid video id")
	ErrTranscriptsDisabled = errors.New("transcripts disabled")
)

// NoTranscriptFoundError means the video has captions, but none in the
// requested languages.
type NoTranscriptFoundError struct {
	VideoID   string
	Languages []string
	Available []string
}

func (e *NoTranscriptFoundError) Error() string {
	return fmt.Sprintf("no transcript for %s in %v (available: %v)", e.VideoID, e.Languages, e.Available)
}

// RetrievalError wraps a failure talking to the caption provider
type RetrievalError struct {
	VideoID string
	Err     error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve transcript for %s: %v", e.VideoID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
