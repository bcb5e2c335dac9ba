package search

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingsProvider abstracts a text->embedding generator
// Implementations should return one embedding vector per input text.
type EmbeddingsProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	ModelName() string
}

var errCountMismatch = errors.New("embedding count mismatch")

// NewDefaultEmbeddingsProvider prefers Cohere when a key is given and falls
// back to OpenAI. It returns nil when neither is configured.
func NewDefaultEmbeddingsProvider(cohereKey, openaiKey, openaiBaseURL string) EmbeddingsProvider {
	if cohereKey != "" {
		// Force HTTP/1.1; the Cohere endpoint has been flaky over HTTP/2
		httpClient := &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
				ForceAttemptHTTP2: false,
			},
		}
		client := cohereclient.NewClient(
			cohereclient.WithToken(cohereKey),
			cohereclient.WithHTTPClient(httpClient),
		)
		return &CohereEmbeddings{client: client, model: "embed-english-v3.0"}
	}

	if openaiKey != "" {
		cfg := openai.DefaultConfig(openaiKey)
		if openaiBaseURL != "" {
			cfg.BaseURL = openaiBaseURL
		}
		return NewOpenAIEmbeddings(openai.NewClientWithConfig(cfg), "")
	}
	return nil
}

// CohereEmbeddings implements EmbeddingsProvider using the Cohere Embed API (v2)
type CohereEmbeddings struct {
	client *cohereclient.Client
	model  string
}

func (c *CohereEmbeddings) ModelName() string { return c.model }

func (c *CohereEmbeddings) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.V2.Embed(
		ctx,
		&cohere.V2EmbedRequest{
			Texts:          texts,
			Model:          c.model,
			InputType:      cohere.EmbedInputTypeSearchDocument,
			EmbeddingTypes: []cohere.EmbeddingType{cohere.EmbeddingTypeFloat},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("cohere embed error: %w", err)
	}
	if resp == nil || resp.Embeddings == nil || resp.Embeddings.Float == nil {
		return nil, errors.New("cohere embed returned no float embeddings")
	}

	floats := resp.Embeddings.Float
	if len(floats) != len(texts) {
		return nil, errCountMismatch
	}

	out := make([][]float32, len(floats))
	for i, vec := range floats {
		fv := make([]float32, len(vec))
		for j, v := range vec {
			fv[j] = float32(v)
		}
		out[i] = fv
	}
	return out, nil
}

// OpenAIEmbedder is the part of the OpenAI client used for embeddings
type OpenAIEmbedder interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIEmbeddings implements EmbeddingsProvider using the OpenAI Embeddings API
type OpenAIEmbeddings struct {
	client OpenAIEmbedder
	model  openai.EmbeddingModel
}

// NewOpenAIEmbeddings wraps an OpenAI client; empty model selects text-embedding-3-small
func NewOpenAIEmbeddings(client OpenAIEmbedder, model string) *OpenAIEmbeddings {
	m := openai.SmallEmbedding3
	if strings.TrimSpace(model) != "" {
		m = openai.EmbeddingModel(model)
	}
	return &OpenAIEmbeddings{client: client, model: m}
}

func (o *OpenAIEmbeddings) ModelName() string { return string(o.model) }

func (o *OpenAIEmbeddings) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: o.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings error: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, errCountMismatch
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}
