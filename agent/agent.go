package agent

import (
	"postcraft/config"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Agent combines a persona, a model, a toolset and a declared output shape
type Agent struct {
	Name         string
	Instructions string
	Model        string
	Tools        []Tool
	MaxTurns     int

	// StructuredOutput requests the {"response": [...]} posts envelope
	// as the final message.
	StructuredOutput bool
}

// FromProfile builds the content agent from a profile. Tools not enabled
// by the profile are left out.
func FromProfile(p config.AgentProfile, tools ...Tool) *Agent {
	a := &Agent{
		Name:             p.Name,
		Instructions:     p.Instructions,
		Model:            p.Model,
		MaxTurns:         p.MaxTurns,
		StructuredOutput: true,
	}
	for _, t := range tools {
		if t != nil && p.HasTool(t.Name()) {
			a.Tools = append(a.Tools, t)
		}
	}
	return a
}

func (a *Agent) maxTurns() int {
	if a.MaxTurns <= 0 {
		return config.DefaultMaxTurns
	}
	return a.MaxTurns
}

func (a *Agent) toolDefinitions() []openai.Tool {
	if len(a.Tools) == 0 {
		return nil
	}
	defs := make([]openai.Tool, 0, len(a.Tools))
	for _, t := range a.Tools {
		def := t.Definition()
		defs = append(defs, openai.Tool{Type: openai.ToolTypeFunction, Function: &def})
	}
	return defs
}

func (a *Agent) tool(name string) Tool {
	for _, t := range a.Tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

func (a *Agent) responseFormat() *openai.ChatCompletionResponseFormat {
	if !a.StructuredOutput {
		return nil
	}
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        "posts",
			Description: "Generated social media posts, one per requested platform",
			Schema:      &postsSchema,
			Strict:      true,
		},
	}
}

var postsSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"response": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"platform": {Type: jsonschema.String, Description: "Target social network"},
					"content":  {Type: jsonschema.String, Description: "Ready-to-publish post text"},
				},
				Required:             []string{"platform", "content"},
				AdditionalProperties: false,
			},
		},
	},
	Required:             []string{"response"},
	AdditionalProperties: false,
}
