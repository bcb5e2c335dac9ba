package tui

// UI Text Constants
const (
	TextTitle        = "📱 Social Media Content Generator"
	TextFooterBusy   = "Press 'q' or Ctrl+C to quit"
	TextFooterReady  = "↑/↓ select | enter expand | s save | q quit"
	TextFooterFailed = "Press 'q' or Ctrl+C to exit"
	TextNoPosts      = "The agent returned no posts."
)
