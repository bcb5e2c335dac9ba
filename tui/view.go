package tui

import (
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")
	if m.Title != "" {
		b.WriteString(InfoStyle.Render("🎬 " + m.Title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Posts
	if m.State == StateReady {
		if len(m.Sections) == 0 {
			b.WriteString(InfoStyle.Render(TextNoPosts))
			b.WriteString("\n\n")
		}
		for i, s := range m.Sections {
			if i == m.Cursor {
				b.WriteString(SelectedStyle.Render("▸ " + s.Label))
			} else {
				b.WriteString("  " + s.Label)
			}
			b.WriteString("\n")
			if i == m.Cursor && m.Expanded {
				b.WriteString(BoxStyle.Render(s.Content))
				b.WriteString("\n")
				b.WriteString(InfoStyle.Render("  " + s.FileName))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString(m.Status)
		b.WriteString("\n\n")
	}

	// Help text
	switch m.State {
	case StateReady:
		b.WriteString(InfoStyle.Render(TextFooterReady))
	case StateError:
		b.WriteString(HighlightStyle.Render(TextFooterFailed))
	default:
		b.WriteString(InfoStyle.Render(TextFooterBusy))
	}

	return b.String()
}
