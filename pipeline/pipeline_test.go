package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postcraft/agent"
	"postcraft/transcript"
	"postcraft/types"
)

type fakeSource struct {
	snippets []transcript.Snippet
	err      error
	calls    int
}

func (f *fakeSource) Snippets(_ context.Context, _ string, _ []string) ([]transcript.Snippet, error) {
	f.calls++
	return f.snippets, f.err
}

type fakeRunner struct {
	output string
	err    error
	calls  int
	input  []types.Turn
}

func (f *fakeRunner) Run(_ context.Context, a *agent.Agent, input []types.Turn) (*agent.RunResult, error) {
	f.calls++
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &agent.RunResult{
		Input:       input,
		NewItems:    []agent.RunItem{{Kind: agent.ItemMessageOutput, Agent: a.Name, Text: f.output}},
		FinalOutput: f.output,
		Turns:       1,
	}, nil
}

type fakeMetadata struct {
	title string
	err   error
}

func (f fakeMetadata) Title(context.Context, string) (string, error) { return f.title, f.err }

func testAgent() *agent.Agent {
	return &agent.Agent{Name: "Content Creator Agent", Model: "gpt-4o-mini", MaxTurns: 10}
}

func TestRunEndToEnd(t *testing.T) {
	source := &fakeSource{snippets: []transcript.Snippet{{Text: "Go 1.24 ships today."}, {Text: "Generics got faster."}}}
	runner := &fakeRunner{output: `{"response":[{"platform":"LinkedIn","content":"X"},{"platform":"Instagram","content":"Y"}]}`}
	p := New(transcript.NewFetcher(source), runner, testAgent())

	res, err := p.Run(context.Background(), Request{
		VideoID:   "OZ5OZZZ2cvk",
		Platforms: []string{"LinkedIn", "Instagram"},
	})
	require.NoError(t, err)

	wantPrompt := "Generate LinkedIn and Instagram posts based on this video transcript: Go 1.24 ships today. Generics got faster."
	assert.Equal(t, wantPrompt, res.Prompt)
	assert.Contains(t, res.Prompt, "LinkedIn")
	assert.Contains(t, res.Prompt, "Instagram")

	require.Len(t, runner.input, 1)
	assert.Equal(t, types.Turn{Role: types.RoleUser, Content: wantPrompt}, runner.input[0])

	assert.Equal(t, []types.Post{{Platform: "LinkedIn", Content: "X"}, {Platform: "Instagram", Content: "Y"}}, res.Posts)
	assert.Equal(t, 1, source.calls)
}

func TestRunWithInstructionAndTitle(t *testing.T) {
	source := &fakeSource{snippets: []transcript.Snippet{{Text: "T"}}}
	runner := &fakeRunner{output: `{"response":[]}`}
	p := New(transcript.NewFetcher(source), runner, testAgent(), WithMetadata(fakeMetadata{title: "Launch"}))

	res, err := p.Run(context.Background(), Request{
		VideoID:     "OZ5OZZZ2cvk",
		Platforms:   []string{"LinkedIn"},
		Instruction: "Make it punchy",
	})
	require.NoError(t, err)
	assert.Equal(t, "Make it punchy for LinkedIn based on this video transcript: T", res.Prompt)
	assert.Equal(t, "Launch", res.Title)
	assert.Empty(t, res.Posts)
}

func TestRunTitleLookupFailureIgnored(t *testing.T) {
	p := New(
		transcript.NewFetcher(&fakeSource{snippets: []transcript.Snippet{{Text: "T"}}}),
		&fakeRunner{output: `{"response":[]}`},
		testAgent(),
		WithMetadata(fakeMetadata{err: errors.New("quota")}),
	)

	res, err := p.Run(context.Background(), Request{VideoID: "OZ5OZZZ2cvk", Platforms: []string{"Twitter"}})
	require.NoError(t, err)
	assert.Equal(t, "", res.Title)
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "missing video id", req: Request{Platforms: []string{"LinkedIn"}}},
		{name: "blank video id", req: Request{VideoID: "  ", Platforms: []string{"LinkedIn"}}},
		{name: "no platforms", req: Request{VideoID: "OZ5OZZZ2cvk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{}
			runner := &fakeRunner{}
			_, err := New(transcript.NewFetcher(source), runner, testAgent()).Run(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
			assert.Zero(t, source.calls)
			assert.Zero(t, runner.calls)
		})
	}
}

func TestRunTranscriptFailureStopsPipeline(t *testing.T) {
	source := &fakeSource{err: transcript.ErrTranscriptsDisabled}
	runner := &fakeRunner{}

	_, err := New(transcript.NewFetcher(source), runner, testAgent()).Run(context.Background(), Request{
		VideoID:   "OZ5OZZZ2cvk",
		Platforms: []string{"LinkedIn"},
	})
	require.Error(t, err)

	var terr *transcript.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, transcript.KindTranscriptsDisabled, terr.Kind)
	assert.Zero(t, runner.calls)
}

func TestRunAgentFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("agent run: 429 rate limited")}
	_, err := New(transcript.NewFetcher(&fakeSource{}), runner, testAgent()).Run(context.Background(), Request{
		VideoID:   "OZ5OZZZ2cvk",
		Platforms: []string{"LinkedIn"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestRunMalformedOutput(t *testing.T) {
	runner := &fakeRunner{output: "Sure! Here are your posts."}
	p := New(transcript.NewFetcher(&fakeSource{}), runner, testAgent())

	res, err := p.Run(context.Background(), Request{VideoID: "OZ5OZZZ2cvk", Platforms: []string{"LinkedIn"}})
	require.Error(t, err)
	assert.Nil(t, res)

	var decodeErr *agent.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestGenerateKeepsRawOutput(t *testing.T) {
	runner := &fakeRunner{output: "Sure! Here are your posts."}
	p := New(transcript.NewFetcher(&fakeSource{}), runner, testAgent())

	res, err := p.Generate(context.Background(), Request{VideoID: "OZ5OZZZ2cvk", Platforms: []string{"LinkedIn"}})
	require.NoError(t, err)
	assert.Equal(t, "Sure! Here are your posts.", agent.TextMessageOutputs(res.Run.NewItems))
}
