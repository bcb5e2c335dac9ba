package types

import "postcraft/config"

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TranscriptRequest identifies a transcript by video and ordered language
// preference. Build it with NewTranscriptRequest.
type TranscriptRequest struct {
	VideoID   string
	Languages []string
}

// NewTranscriptRequest copies languages so later changes by the caller do
// not leak into the request, and defaults them to English.
func NewTranscriptRequest(videoID string, languages []string) TranscriptRequest {
	langs := make([]string, 0, len(languages))
	for _, l := range languages {
		if l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		langs = []string{config.DefaultTranscriptLanguage}
	}
	return TranscriptRequest{VideoID: videoID, Languages: langs}
}

// Turn is a single conversation message
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest is the agent input: prior context plus one user turn
type GenerationRequest struct {
	Instructions string
	Context      []Turn
}

// Input returns the context followed by the instructions as a user turn.
func (r GenerationRequest) Input() []Turn {
	turns := make([]Turn, 0, len(r.Context)+1)
	turns = append(turns, r.Context...)
	return append(turns, Turn{Role: RoleUser, Content: r.Instructions})
}
