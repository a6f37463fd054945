// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	BranchColor        = lipgloss.Color("#54A0FF") // Blue
	CommitColor        = lipgloss.Color("#73F59F") // Green
	DeletedColor       = lipgloss.Color("#696969") // Grey
	ErrorColor         = lipgloss.Color("#FF6B6B")
	AccentColor        = lipgloss.Color("#7D56F4") // Purple
	BorderDefaultColor = lipgloss.Color("#444444")
	TextMutedColor     = lipgloss.Color("#8A8A8A")
)

// Transcript line styles.
var (
	InputStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	HeadStyle    = lipgloss.NewStyle().Foreground(CommitColor)
	DeletedStyle = lipgloss.NewStyle().Foreground(DeletedColor).Italic(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	HintStyle    = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	TitleStyle   = lipgloss.NewStyle().Foreground(BranchColor).Bold(true)
)
