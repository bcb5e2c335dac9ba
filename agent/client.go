package agent

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the slice of the OpenAI API the agent needs.
// *openai.Client satisfies it; tests substitute fakes.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient builds an OpenAI client. baseURL may be empty for the
// public endpoint; httpClient may be nil.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(cfg)
}
