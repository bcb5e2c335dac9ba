package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"postcraft/pipeline"
	"postcraft/present"
)

// generate runs the pipeline off the UI loop
func generate(ctx context.Context, gen Generator, req pipeline.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := gen.Run(ctx, req)
		return GenerationCompleteMsg{Result: res, Err: err}
	}
}

// savePost writes a section's content to its download file name under dir
func savePost(dir string, s present.Section) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return SavedMsg{Err: fmt.Errorf("create output dir: %w", err)}
		}
		path := filepath.Join(dir, s.FileName)
		if err := os.WriteFile(path, []byte(s.Content), 0o644); err != nil {
			return SavedMsg{Err: fmt.Errorf("write %s: %w", path, err)}
		}
		return SavedMsg{Path: path}
	}
}
