package types

import (
	"time"

	"github.com/google/uuid"
)

// Job result statuses
const (
	JobStatusSuccess = "success"
	JobStatusFailed  = "failed"
)

// GenerationJob is a queued request to generate posts for one video
type GenerationJob struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"video_id"`
	Languages   []string  `json:"languages,omitempty"`
	Platforms   []string  `json:"platforms"`
	Instruction string    `json:"instruction,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewGenerationJob assigns a fresh job ID
func NewGenerationJob(videoID string, languages, platforms []string, instruction string) GenerationJob {
	return GenerationJob{
		ID:          uuid.New().String(),
		VideoID:     videoID,
		Languages:   languages,
		Platforms:   platforms,
		Instruction: instruction,
		CreatedAt:   time.Now().UTC(),
	}
}

// GenerationResult is published once per processed job
type GenerationResult struct {
	JobID       string    `json:"job_id"`
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title,omitempty"`
	Status      string    `json:"status"`
	Posts       []Post    `json:"posts,omitempty"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
