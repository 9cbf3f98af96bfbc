// Package tui provides the Bubble Tea terminal interface for yt2mp3: a
// stage progress view and the tag prompts.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/yt2mp3/internal/pipeline"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// RenderEvent styles one progress line with a level prefix.
func RenderEvent(e pipeline.ProgressEvent) string {
	var style lipgloss.Style
	prefix := "•"
	switch e.Level {
	case pipeline.LevelError:
		style = errorStyle
		prefix = "✗"
	case pipeline.LevelWarning:
		style = warningStyle
		prefix = "!"
	case pipeline.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case pipeline.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + e.Message)
}
