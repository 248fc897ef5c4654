// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines consistent visual styling for TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the TUI, derived from one
// theme palette.
type Styles struct {
	// Color palette
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color

	// Component styles
	Title      lipgloss.Style
	Prompt     lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Checked    lipgloss.Style
	Source     lipgloss.Style
	Border     lipgloss.Style
	Footer     lipgloss.Style

	// Text styles (cached for performance)
	MutedText   lipgloss.Style
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
}

// New creates a Styles instance from the default palette.
func New() *Styles {
	return FromPalette(ResolvePalette("default", nil))
}

// FromPalette derives the component styles from a theme palette.
func FromPalette(palette Palette) *Styles {
	primary := lipgloss.Color(palette.Primary)
	secondary := lipgloss.Color(palette.Secondary)
	success := lipgloss.Color(palette.Success)
	warning := lipgloss.Color(palette.Warning)
	errorColor := lipgloss.Color(palette.Error)
	muted := lipgloss.Color(palette.Muted)
	highlight := lipgloss.Color(palette.Highlight)
	text := lipgloss.Color(palette.Text)

	return &Styles{
		Primary:   primary,
		Secondary: secondary,
		Success:   success,
		Warning:   warning,
		Error:     errorColor,
		Muted:     muted,

		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Background(highlight).
			Foreground(text).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),

		Unselected: lipgloss.NewStyle().
			Foreground(text),

		Checked: lipgloss.NewStyle().
			Foreground(success),

		Source: lipgloss.NewStyle().
			Foreground(warning),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted),

		Footer: lipgloss.NewStyle().
			Foreground(muted),

		MutedText: lipgloss.NewStyle().
			Foreground(muted),

		SuccessText: lipgloss.NewStyle().
			Foreground(success),

		ErrorText: lipgloss.NewStyle().
			Foreground(errorColor),
	}
}
