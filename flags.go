package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"postcraft/pipeline"
	"postcraft/types"
)

// requestFlags are shared by every command that starts a generation
type requestFlags struct {
	platforms   []string
	languages   []string
	instruction string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.platforms, "platforms", types.DefaultPlatforms, "Platforms to write for (LinkedIn, Instagram, Twitter)")
	cmd.Flags().StringSliceVar(&f.languages, "languages", nil, "Preferred transcript languages in order (default en)")
	cmd.Flags().StringVar(&f.instruction, "instruction", "", "Extra instruction for the agent, e.g. \"Make it punchy\"")
}

func (f *requestFlags) request(videoID string) (pipeline.Request, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return pipeline.Request{}, errors.New("a YouTube video ID is required")
	}
	platforms, err := types.ParsePlatforms(f.platforms)
	if err != nil {
		return pipeline.Request{}, err
	}
	if len(platforms) == 0 {
		return pipeline.Request{}, errors.New("choose at least one social media platform")
	}
	return pipeline.Request{
		VideoID:     videoID,
		Languages:   f.languages,
		Platforms:   platforms,
		Instruction: strings.TrimSpace(f.instruction),
	}, nil
}
