package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"postcraft/config"
	"postcraft/types"
)

// DecodeError reports final output that does not match the posts envelope
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("agent output is not a valid posts response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var errMissingResponse = errors.New(`missing "response" key`)

// rawPost tells an absent field apart from an empty one
type rawPost struct {
	Platform *string `json:"platform"`
	Content  *string `json:"content"`
}

// DecodePosts parses {"response": [{"platform": ..., "content": ...}]}.
// A surrounding markdown code fence is tolerated; anything else that is
// not the envelope is a *DecodeError. An absent platform becomes
// "Unknown" and an absent content "", present values are kept as is.
func DecodePosts(raw string) ([]types.Post, error) {
	text := stripFences(raw)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, &DecodeError{Raw: raw, Err: err}
	}
	body, ok := envelope["response"]
	if !ok {
		return nil, &DecodeError{Raw: raw, Err: errMissingResponse}
	}

	var items []rawPost
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &DecodeError{Raw: raw, Err: err}
	}

	posts := make([]types.Post, 0, len(items))
	for _, item := range items {
		post := types.Post{Platform: config.UnknownPlatform}
		if item.Platform != nil {
			post.Platform = *item.Platform
		}
		if item.Content != nil {
			post.Content = *item.Content
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// stripFences removes a ```json ... ``` wrapper if present
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
