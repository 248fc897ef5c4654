// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pmgr/internal/tui/styles"
)

// ThemePickerModel lets the user pick a color palette by name. The
// cursor starts on the active theme; dismissal reports an empty choice.
type ThemePickerModel struct {
	styles *styles.Styles
	names  []string
	user   map[string]styles.Palette
	cursor int
	choice string
}

// NewThemePicker creates the theme picker over the selectable theme
// names, with the cursor on the currently active one. The user map
// carries themes.toml overrides so their swatches preview correctly.
func NewThemePicker(styleSet *styles.Styles, names []string, current string, user map[string]styles.Palette) *ThemePickerModel {
	model := &ThemePickerModel{
		styles: styleSet,
		names:  names,
		user:   user,
	}

	for i, name := range names {
		if name == current {
			model.cursor = i

			break
		}
	}

	return model
}

// Choice returns the picked theme name, empty if dismissed.
func (m *ThemePickerModel) Choice() string {
	return m.choice
}

// Init implements tea.Model.
func (m *ThemePickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *ThemePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.names) > 0 {
			m.choice = m.names[m.cursor]
		}

		return m, tea.Quit

	case "q", "esc", "ctrl+c":
		m.choice = ""

		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m *ThemePickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Choose a theme"))
	b.WriteString("\n\n")

	for i, name := range m.names {
		swatch := m.swatchFor(name)

		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("▸ " + name))
		} else {
			b.WriteString("  " + name)
		}

		b.WriteString(" " + swatch + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("↑/↓ move · enter apply · esc keep current"))

	return b.String()
}

// swatchFor previews a palette's accent colors next to its name.
func (m *ThemePickerModel) swatchFor(name string) string {
	palette := styles.ResolvePalette(name, m.user)
	preview := styles.FromPalette(palette)

	return preview.Title.Render("●") +
		preview.SuccessText.Render("●") +
		preview.ErrorText.Render("●")
}
