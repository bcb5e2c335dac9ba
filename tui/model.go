package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"postcraft/pipeline"
	"postcraft/present"
)

// State represents the application state machine
type State string

const (
	StateGenerating State = "generating"
	StateReady      State = "ready"
	StateError      State = "error"
)

// Generator runs one post generation
type Generator interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Model is the post browser state
type Model struct {
	ctx       context.Context
	gen       Generator
	req       pipeline.Request
	outputDir string

	State    State
	Title    string
	Sections []present.Section
	Cursor   int
	Expanded bool
	Status   string
	Err      error
}

// NewModel creates a browser that generates posts for req on start
func NewModel(ctx context.Context, gen Generator, req pipeline.Request, outputDir string) Model {
	return Model{
		ctx:       ctx,
		gen:       gen,
		req:       req,
		outputDir: outputDir,
		State:     StateGenerating,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return generate(m.ctx, m.gen, m.req)
}

// selected returns the section under the cursor
func (m Model) selected() (present.Section, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Sections) {
		return present.Section{}, false
	}
	return m.Sections[m.Cursor], true
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateGenerating:
		return StatusStyle.Render(fmt.Sprintf("⏳ Generating posts for %s...", m.req.VideoID))
	case StateReady:
		return StatusStyle.Render(fmt.Sprintf("✅ %d posts ready", len(m.Sections)))
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render("Something went wrong: " + errMsg)
	default:
		return ""
	}
}
