package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"postcraft/tui"
)

func newBrowseCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "browse VIDEO_ID",
		Short: "Generate posts and browse them in the terminal",
		Long: `Generate posts for a video and browse them interactively.

Use the arrow keys to select a post, enter to expand it and s to save it
to OUTPUT_DIR as {platform}_post.txt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}

			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			p, cleanup, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			model := tui.NewModel(cmd.Context(), p, req, cfg.OutputDir)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(tui.Model); ok && m.State == tui.StateError {
				return m.Err
			}
			return nil
		},
	}

	flags.bind(cmd)

	return cmd
}
