package prompt

import (
	"fmt"
	"strings"
)

// JoinPlatforms renders platforms as a phrase, e.g. "LinkedIn and Instagram"
func JoinPlatforms(platforms []string) string {
	return strings.Join(platforms, " and ")
}

// Build composes the single user instruction sent to the content agent.
// The transcript is passed through whole; the model's context window is the
// only bound on its length.
func Build(transcript string, platforms []string, instruction string) string {
	joined := JoinPlatforms(platforms)
	if instruction != "" {
		return fmt.Sprintf("%s for %s based on this video transcript: %s", instruction, joined, transcript)
	}
	return fmt.Sprintf("Generate %s posts based on this video transcript: %s", joined, transcript)
}
