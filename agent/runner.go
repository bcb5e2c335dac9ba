package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"postcraft/types"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMaxTurnsExceeded is returned when the model keeps calling tools past
// the agent's turn ceiling.
var ErrMaxTurnsExceeded = errors.New("agent exceeded max turns")

// ItemKind tells what a RunItem records
type ItemKind string

const (
	ItemMessageOutput ItemKind = "message_output"
	ItemToolCall      ItemKind = "tool_call"
	ItemToolOutput    ItemKind = "tool_output"
)

// RunItem is one event produced during a run, in order of occurrence
type RunItem struct {
	Kind      ItemKind `json:"kind"`
	Agent     string   `json:"agent"`
	Text      string   `json:"text,omitempty"`
	ToolName  string   `json:"tool_name,omitempty"`
	CallID    string   `json:"call_id,omitempty"`
	Arguments string   `json:"arguments,omitempty"`
}

// RunResult is everything a run produced
type RunResult struct {
	Input       []types.Turn
	NewItems    []RunItem
	FinalOutput string
	Turns       int
}

// Posts decodes the final output as the posts envelope
func (r *RunResult) Posts() ([]types.Post, error) {
	return DecodePosts(r.FinalOutput)
}

// TextMessageOutputs concatenates the text of every message output item
func TextMessageOutputs(items []RunItem) string {
	var b strings.Builder
	for _, item := range items {
		if item.Kind == ItemMessageOutput {
			b.WriteString(item.Text)
		}
	}
	return b.String()
}

// Runner drives an agent against a chat model until it stops calling tools
type Runner struct {
	client ChatClient
}

// NewRunner creates a runner over client
func NewRunner(client ChatClient) *Runner {
	return &Runner{client: client}
}

// Run executes one generation turn. Tool calls requested by the model run
// sequentially in the order given and their outputs are fed back. A failing
// tool is reported to the model as its output rather than ending the run.
// Provider errors end the run and are returned wrapped, unclassified.
func (r *Runner) Run(ctx context.Context, a *Agent, input []types.Turn) (*RunResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(input)+1)
	if a.Instructions != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: a.Instructions})
	}
	for _, t := range input {
		messages = append(messages, openai.ChatCompletionMessage{Role: t.Role, Content: t.Content})
	}

	result := &RunResult{Input: input}
	tools := a.toolDefinitions()
	maxTurns := a.maxTurns()

	for turn := 1; turn <= maxTurns; turn++ {
		resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:          a.Model,
			Messages:       messages,
			Tools:          tools,
			ResponseFormat: a.responseFormat(),
		})
		if err != nil {
			return nil, fmt.Errorf("agent run: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("agent run: %w", ErrEmptyCompletion)
		}

		msg := resp.Choices[0].Message
		messages = append(messages, msg)
		result.Turns = turn

		if msg.Content != "" {
			result.NewItems = append(result.NewItems, RunItem{Kind: ItemMessageOutput, Agent: a.Name, Text: msg.Content})
		}

		if len(msg.ToolCalls) == 0 {
			result.FinalOutput = msg.Content
			log.Printf("🤖 %s finished after %d turn(s)", a.Name, turn)
			return result, nil
		}

		for _, call := range msg.ToolCalls {
			result.NewItems = append(result.NewItems, RunItem{
				Kind:      ItemToolCall,
				Agent:     a.Name,
				ToolName:  call.Function.Name,
				CallID:    call.ID,
				Arguments: call.Function.Arguments,
			})

			output := r.invoke(ctx, a, call)

			result.NewItems = append(result.NewItems, RunItem{
				Kind:     ItemToolOutput,
				Agent:    a.Name,
				ToolName: call.Function.Name,
				CallID:   call.ID,
				Text:     output,
			})
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    output,
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			})
		}
	}

	return nil, fmt.Errorf("%w (%d)", ErrMaxTurnsExceeded, maxTurns)
}

func (r *Runner) invoke(ctx context.Context, a *Agent, call openai.ToolCall) string {
	tool := a.tool(call.Function.Name)
	if tool == nil {
		log.Printf("⚠️  Model requested unknown tool %q", call.Function.Name)
		return fmt.Sprintf("Error: tool %q is not available", call.Function.Name)
	}

	out, err := tool.Call(ctx, call.Function.Arguments)
	if err != nil {
		log.Printf("❌ Tool %s failed: %v", call.Function.Name, err)
		return fmt.Sprintf("Error: %v", err)
	}
	return out
}
