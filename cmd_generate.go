package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"postcraft/agent"
	"postcraft/pipeline"
	"postcraft/present"
)

type postGenerator interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	Generate(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

func newGenerateCommand() *cobra.Command {
	var (
		flags requestFlags
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "generate VIDEO_ID",
		Short: "Generate posts for one video and print them",
		Long: `Generate social media posts from a YouTube video's transcript.

The agent's structured output is printed as one section per post. With --raw
the agent's message text is printed as-is without decoding.`,
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

			return runGenerate(cmd.Context(), cmd.OutOrStdout(), p, req, raw)
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the agent's message text without decoding posts")

	return cmd
}

func runGenerate(ctx context.Context, w io.Writer, gen postGenerator, req pipeline.Request, raw bool) error {
	if raw {
		res, err := gen.Generate(ctx, req)
		if err != nil {
			return err
		}
		return present.PrintRaw(w, agent.TextMessageOutputs(res.Run.NewItems))
	}

	res, err := gen.Run(ctx, req)
	if err != nil {
		return err
	}
	return present.Print(w, res.Title, present.Sections(res.Posts))
}
