package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"postcraft/config"
	"postcraft/search"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Tool names as exposed to the model
const (
	ToolCreateSocialPost = "create_social_post"
	ToolWebSearch        = "web_search"
)

// ErrEmptyCompletion is returned when the model answers with no choices
var ErrEmptyCompletion = errors.New("model returned no choices")

// Tool is a capability the agent may call zero or more times per turn
type Tool interface {
	Name() string
	Definition() openai.FunctionDefinition
	Call(ctx context.Context, arguments string) (string, error)
}

// PostTool writes one post for one platform with a single model call
type PostTool struct {
	client    ChatClient
	model     string
	maxTokens int
}

// NewPostTool creates the post writer. Zero values fall back to the defaults.
func NewPostTool(client ChatClient, model string, maxTokens int) *PostTool {
	if model == "" {
		model = config.DefaultPostModel
	}
	if maxTokens <= 0 {
		maxTokens = config.PostMaxTokens
	}
	return &PostTool{client: client, model: model, maxTokens: maxTokens}
}

func (t *PostTool) Name() string { return ToolCreateSocialPost }

func (t *PostTool) Definition() openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name:        ToolCreateSocialPost,
		Description: "Write a social media post for one platform from a video transcript.",
		Strict:      true,
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"transcript": {Type: jsonschema.String, Description: "The video transcript"},
				"platform":   {Type: jsonschema.String, Description: "Target platform, e.g. LinkedIn"},
			},
			Required:             []string{"transcript", "platform"},
			AdditionalProperties: false,
		},
	}
}

func (t *PostTool) Call(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Transcript string `json:"transcript"`
		Platform   string `json:"platform"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid %s arguments: %w", ToolCreateSocialPost, err)
	}
	return t.Write(ctx, args.Transcript, args.Platform)
}

// Write asks the post model for a single draft
func (t *PostTool) Write(ctx context.Context, transcript, platform string) (string, error) {
	log.Printf("✍️  Creating content for: %s", platform)

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     t.model,
		MaxTokens: t.maxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Here is the transcript:\n%s\n\nPlease write a post for %s using the transcript above.",
				transcript, platform),
		}},
	})
	if err != nil {
		return "", fmt.Errorf("create social post for %s: %w", platform, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// Searcher runs a web search
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// WebSearchTool exposes a Searcher to the model
type WebSearchTool struct {
	searcher Searcher
}

// NewWebSearchTool wraps searcher as a tool
func NewWebSearchTool(searcher Searcher) *WebSearchTool {
	return &WebSearchTool{searcher: searcher}
}

func (t *WebSearchTool) Name() string { return ToolWebSearch }

func (t *WebSearchTool) Definition() openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name:        ToolWebSearch,
		Description: "Search the web for recent facts, statistics or context that make a post more relevant.",
		Strict:      true,
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"query": {Type: jsonschema.String, Description: "Search query"},
			},
			Required:             []string{"query"},
			AdditionalProperties: false,
		},
	}
}

func (t *WebSearchTool) Call(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid %s arguments: %w", ToolWebSearch, err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return "", errors.New("empty search query")
	}

	log.Printf("🔍 Searching the web: %s", args.Query)
	results, err := t.searcher.Search(ctx, args.Query)
	if err != nil {
		return "", fmt.Errorf("web search: %w", err)
	}
	return FormatResults(results), nil
}

// FormatResults renders search results as numbered plain text for the model
func FormatResults(results []search.Result) string {
	if len(results) == 0 {
		return "No results found."
	}
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n%s\n", i+1, r.Title, r.URL)
		if text := r.Summary(); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
