package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result is one web search hit
type Result struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`

	// Excerpt is filled by page extraction when enabled
	Excerpt         string `json:"excerpt,omitempty"`
	ExtractionError string `json:"extraction_error,omitempty"`
}

// Summary returns the best text available for the result
func (r Result) Summary() string {
	if r.Excerpt != "" {
		return r.Excerpt
	}
	return r.Content
}

type searxngResponse struct {
	Results []Result `json:"results"`
}

// Client queries a SearXNG instance through its JSON API
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

// NewClient creates a SearXNG client. language may be empty for "all".
func NewClient(baseURL, language string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: httpClient,
	}
}

// Search returns raw results in engine order
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	if c.language != "" && c.language != "all" {
		q.Set("language", c.language)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searxng request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("searxng returned %d: %s", resp.StatusCode, body)
	}

	var data searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode searxng response: %w", err)
	}
	return data.Results, nil
}

// DedupByDomain limits results to maxPerDomain per host
func DedupByDomain(results []Result, maxPerDomain int) []Result {
	counts := make(map[string]int)
	var out []Result
	for _, r := range results {
		u, err := url.Parse(r.URL)
		if err != nil {
			continue
		}
		domain := u.Hostname()
		if counts[domain] < maxPerDomain {
			out = append(out, r)
			counts[domain]++
		}
	}
	return out
}
