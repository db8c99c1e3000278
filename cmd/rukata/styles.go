// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette tuned for dark terminals.
const (
	ColorPrimary   = lipgloss.Color("#D97706")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for section titles ("Current settings").
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	// CmdStyle is for commands and paths the user can copy.
	CmdStyle = lipgloss.NewStyle().Foreground(ColorHighlight)

	// difficultyStyles color the difficulty column of `rukata list`.
	difficultyStyles = map[string]lipgloss.Style{
		"basic":        lipgloss.NewStyle().Foreground(ColorSuccess),
		"intermediate": lipgloss.NewStyle().Foreground(ColorWarning),
		"advanced":     lipgloss.NewStyle().Foreground(ColorError),
		"none":         SubtitleStyle,
	}
)
