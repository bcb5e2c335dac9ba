package present

import (
	"fmt"
	"io"
	"strings"
)

// Print writes styled sections to w
func Print(w io.Writer, title string, sections []Section) error {
	var b strings.Builder

	if title != "" {
		b.WriteString(TitleStyle.Render("🎬 " + title))
		b.WriteString("\n")
	}

	if len(sections) == 0 {
		b.WriteString(InfoStyle.Render("No posts were generated."))
		b.WriteString("\n")
	}

	for _, s := range sections {
		b.WriteString(LabelStyle.Render(s.Label))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(s.Content))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("💾 " + s.FileName))
		b.WriteString("\n\n")
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}

// PrintRaw writes the agent's message text verbatim
func PrintRaw(w io.Writer, text string) error {
	_, err := fmt.Fprintln(w, text)
	return err
}
