package transcript

import (
	"context"
	"log"
	"strings"

	"postcraft/types"
)

// Fetcher turns caption snippets into one transcript string and converts
// source failures into *Error.
type Fetcher struct {
	source Source
}

// NewFetcher creates a fetcher over the given source
func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch returns the transcript for videoID. Empty languages means English.
// The source is called exactly once; there is no retry and no fallback to
// languages that were not requested.
func (f *Fetcher) Fetch(ctx context.Context, videoID string, languages []string) (string, error) {
	req := types.NewTranscriptRequest(videoID, languages)

	if req.VideoID == "" {
		return "", f.fail(req, ErrInvalidVideoID)
	}

	snippets, err := f.source.Snippets(ctx, req.VideoID, req.Languages)
	if err != nil {
		return "", f.fail(req, err)
	}

	return Join(snippets), nil
}

func (f *Fetcher) fail(req types.TranscriptRequest, cause error) *Error {
	terr := classify(req, cause)
	log.Printf("❌ Transcript Error: %s", terr.Message)
	return terr
}

// Join concatenates snippet texts with single spaces, in order and verbatim
func Join(snippets []Snippet) string {
	texts := make([]string, len(snippets))
	for i, s := range snippets {
		texts[i] = s.Text
	}
	return strings.Join(texts, " ")
}
