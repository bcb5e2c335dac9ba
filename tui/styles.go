package tui

import "postcraft/present"

// Styles for the TUI application
var (
	TitleStyle     = present.TitleStyle
	StatusStyle    = present.StatusStyle
	ErrorStyle     = present.ErrorStyle
	InfoStyle      = present.InfoStyle
	BoxStyle       = present.BoxStyle
	HighlightStyle = present.LabelStyle
	SelectedStyle  = present.SelectedStyle
)
