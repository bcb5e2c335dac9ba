package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "postcraft",
		Short: "Turn YouTube videos into social media posts",
		Long: `postcraft fetches a YouTube video's transcript and has an LLM agent
write platform-specific posts (LinkedIn, Instagram, Twitter) from it.

Run it once from the command line, serve the web form, browse results in
the terminal, or process queued jobs from Kafka.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newBrowseCommand())
	cmd.AddCommand(newWorkerCommand())
	cmd.AddCommand(newEnqueueCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
