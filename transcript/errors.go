package transcript

import (
	"errors"
	"fmt"

	"postcraft/types"
)

// Kind classifies a transcript failure
type Kind int

const (
	KindNoTranscriptInLanguages Kind = iota + 1
	KindVideoUnavailable
	KindInvalidVideoID
	KindTranscriptsDisabled
	KindRetrievalFailure
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNoTranscriptInLanguages:
		return "no_transcript_in_languages"
	case KindVideoUnavailable:
		return "video_unavailable"
	case KindInvalidVideoID:
		return "invalid_video_id"
	case KindTranscriptsDisabled:
		return "transcripts_disabled"
	case KindRetrievalFailure:
		return "retrieval_failure"
	default:
		return "unknown"
	}
}

// Error is the single failure type returned by Fetcher. Callers are expected
// to use only the message; Kind is kept for logs and tests.
type Error struct {
	Kind    Kind
	VideoID string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// classify maps a source failure to exactly one Kind. Checks run in a fixed
// priority so an error matching several cases lands in the first.
func classify(req types.TranscriptRequest, err error) *Error {
	id := req.VideoID

	var notFound *NoTranscriptFoundError
	var retrieval *RetrievalError

	switch {
	case errors.As(err, &notFound):
		return &Error{
			Kind:    KindNoTranscriptInLanguages,
			VideoID: id,
			Message: fmt.Sprintf("No transcript available for video %s in languages: %v", id, req.Languages),
			Err:     err,
		}
	case errors.Is(err, ErrVideoUnavailable):
		return &Error{
			Kind:    KindVideoUnavailable,
			VideoID: id,
			Message: fmt.Sprintf("The video %s is not accessible.", id),
			Err:     err,
		}
	case errors.Is(err, ErrInvalidVideoID):
		return &Error{
			Kind:    KindInvalidVideoID,
			VideoID: id,
			Message: fmt.Sprintf("The provided video ID '%s' is invalid.", id),
			Err:     err,
		}
	case errors.Is(err, ErrTranscriptsDisabled):
		return &Error{
			Kind:    KindTranscriptsDisabled,
			VideoID: id,
			Message: fmt.Sprintf("Transcripts are disabled for video %s.", id),
			Err:     err,
		}
	case errors.As(err, &retrieval):
		return &Error{
			Kind:    KindRetrievalFailure,
			VideoID: id,
			Message: fmt.Sprintf("Unable to get transcript: %v", err),
			Err:     err,
		}
	default:
		return &Error{
			Kind:    KindUnknown,
			VideoID: id,
			Message: fmt.Sprintf("Unknown error: %v", err),
			Err:     err,
		}
	}
}
