package tui

import "postcraft/pipeline"

// GenerationCompleteMsg is sent when the pipeline finishes
type GenerationCompleteMsg struct {
	Result *pipeline.Result
	Err    error
}

// SavedMsg is sent after a post was written to disk
type SavedMsg struct {
	Path string
	Err  error
}
