package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed agent.yaml
var defaultAgentYAML []byte

// AgentProfile describes the content agent: persona, model and toolset.
type AgentProfile struct {
	Name         string          `yaml:"name"`
	Model        string          `yaml:"model"`
	MaxTurns     int             `yaml:"max_turns"`
	Instructions string          `yaml:"instructions"`
	Tools        []string        `yaml:"tools"`
	PostTool     PostToolProfile `yaml:"post_tool"`
}

// PostToolProfile configures the single-post writer tool
type PostToolProfile struct {
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultAgentProfile returns the embedded profile.
func DefaultAgentProfile() (AgentProfile, error) {
	var p AgentProfile
	if err := yaml.Unmarshal(defaultAgentYAML, &p); err != nil {
		return AgentProfile{}, fmt.Errorf("parse embedded agent profile: %w", err)
	}
	p.applyDefaults()
	return p, nil
}

// LoadAgentProfile reads a YAML profile from path and overlays it on the
// embedded default. An empty path returns the default unchanged.
func LoadAgentProfile(path string) (AgentProfile, error) {
	p, err := DefaultAgentProfile()
	if err != nil {
		return AgentProfile{}, err
	}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return AgentProfile{}, fmt.Errorf("read agent profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return AgentProfile{}, fmt.Errorf("parse agent profile %s: %w", path, err)
	}
	p.applyDefaults()
	return p, nil
}

// HasTool reports whether the profile enables the named tool
func (p AgentProfile) HasTool(name string) bool {
	for _, t := range p.Tools {
		if t == name {
			return true
		}
	}
	return false
}

func (p *AgentProfile) applyDefaults() {
	if p.Name == "" {
		p.Name = DefaultAgentName
	}
	if p.Model == "" {
		p.Model = DefaultAgentModel
	}
	if p.MaxTurns <= 0 {
		p.MaxTurns = DefaultMaxTurns
	}
	if p.PostTool.Model == "" {
		p.PostTool.Model = DefaultPostModel
	}
	if p.PostTool.MaxTokens <= 0 {
		p.PostTool.MaxTokens = PostMaxTokens
	}
}
