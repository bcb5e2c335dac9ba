package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"postcraft/present"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case GenerationCompleteMsg:
		return m.handleGenerationComplete(msg)
	case SavedMsg:
		return m.handleSaved(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	if m.State != StateReady {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			m.Expanded = false
		}
	case "down", "j":
		if m.Cursor < len(m.Sections)-1 {
			m.Cursor++
			m.Expanded = false
		}
	case "enter", " ":
		m.Expanded = !m.Expanded
	case "s":
		if s, ok := m.selected(); ok {
			m.Status = ""
			return m, savePost(m.outputDir, s)
		}
	}
	return m, nil
}

// handleGenerationComplete shows the posts, or only the error
func (m Model) handleGenerationComplete(msg GenerationCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		m.Sections = nil
		return m, nil
	}
	m.State = StateReady
	m.Title = msg.Result.Title
	m.Sections = present.Sections(msg.Result.Posts)
	m.Cursor = 0
	m.Expanded = len(m.Sections) == 1
	return m, nil
}

// handleSaved reports where a post was written
func (m Model) handleSaved(msg SavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Status = ErrorStyle.Render("❌ " + msg.Err.Error())
		return m, nil
	}
	m.Status = StatusStyle.Render("💾 Saved " + msg.Path)
	return m, nil
}
