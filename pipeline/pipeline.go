package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"postcraft/agent"
	"postcraft/prompt"
	"postcraft/types"
)

// ErrInvalidRequest is returned before any external call when a request is
// missing its video id or platforms.
var ErrInvalidRequest = errors.New("invalid generation request")

// TranscriptFetcher returns a video's transcript as one string
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string, languages []string) (string, error)
}

// AgentRunner runs an agent over conversation turns
type AgentRunner interface {
	Run(ctx context.Context, a *agent.Agent, input []types.Turn) (*agent.RunResult, error)
}

// MetadataLookup resolves a video's title
type MetadataLookup interface {
	Title(ctx context.Context, videoID string) (string, error)
}

// Request is one generation request
type Request struct {
	VideoID     string   `json:"video_id"`
	Languages   []string `json:"languages,omitempty"`
	Platforms   []string `json:"platforms"`
	Instruction string   `json:"instruction,omitempty"`
}

// Validate checks the fields needed before fetching anything
func (r Request) Validate() error {
	if strings.TrimSpace(r.VideoID) == "" {
		return fmt.Errorf("%w: missing video id", ErrInvalidRequest)
	}
	if len(r.Platforms) == 0 {
		return fmt.Errorf("%w: no platforms selected", ErrInvalidRequest)
	}
	return nil
}

// Result is the outcome of one pipeline run
type Result struct {
	VideoID string           `json:"video_id"`
	Title   string           `json:"title,omitempty"`
	Prompt  string           `json:"-"`
	Run     *agent.RunResult `json:"-"`
	Posts   []types.Post     `json:"response"`
}

// Pipeline wires transcript fetch, prompt building and the agent run
type Pipeline struct {
	fetcher  TranscriptFetcher
	runner   AgentRunner
	agent    *agent.Agent
	metadata MetadataLookup
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithMetadata enables title lookup
func WithMetadata(m MetadataLookup) Option {
	return func(p *Pipeline) { p.metadata = m }
}

// New creates a pipeline
func New(fetcher TranscriptFetcher, runner AgentRunner, a *agent.Agent, opts ...Option) *Pipeline {
	p := &Pipeline{fetcher: fetcher, runner: runner, agent: a}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run fetches, prompts, runs the agent and decodes its posts. Any failure
// ends the run with no partial result.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	res, err := p.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	posts, err := res.Run.Posts()
	if err != nil {
		log.Printf("❌ Agent output could not be decoded: %v", err)
		return nil, err
	}
	res.Posts = posts

	log.Printf("✅ Generated %d posts for %s", len(posts), req.VideoID)
	return res, nil
}

// Generate runs the pipeline up to the agent run and leaves the output
// undecoded.
func (p *Pipeline) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log.Printf("📥 Fetching transcript for %s", req.VideoID)
	text, err := p.fetcher.Fetch(ctx, req.VideoID, req.Languages)
	if err != nil {
		return nil, err
	}

	res := &Result{
		VideoID: req.VideoID,
		Title:   p.title(ctx, req.VideoID),
		Prompt:  prompt.Build(text, req.Platforms, req.Instruction),
	}

	genReq := types.GenerationRequest{Instructions: res.Prompt}

	log.Printf("🤖 Running %s for %s", p.agent.Name, prompt.JoinPlatforms(req.Platforms))
	run, err := p.runner.Run(ctx, p.agent, genReq.Input())
	if err != nil {
		return nil, err
	}
	res.Run = run
	return res, nil
}

func (p *Pipeline) title(ctx context.Context, videoID string) string {
	if p.metadata == nil {
		return ""
	}
	title, err := p.metadata.Title(ctx, videoID)
	if err != nil {
		log.Printf("⚠️  Title lookup failed for %s: %v", videoID, err)
		return ""
	}
	return title
}
