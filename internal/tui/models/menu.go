// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pmgr/internal/tui/styles"
)

// MenuAction is what the user picked on the home screen.
type MenuAction int

// Home menu actions.
const (
	MenuNone MenuAction = iota
	MenuInstall
	MenuRemove
	MenuBrowse
	MenuUpdate
	MenuTheme
	MenuQuit
)

type menuItem struct {
	action      MenuAction
	title       string
	description string
}

func menuItems() []menuItem {
	return []menuItem{
		{MenuInstall, "Install packages", "browse everything installable"},
		{MenuRemove, "Remove packages", "pick from installed packages"},
		{MenuBrowse, "Browse installed", "inspect what is on the system"},
		{MenuUpdate, "Update system", "full upgrade via the backend"},
		{MenuTheme, "Change theme", "pick a color palette"},
		{MenuQuit, "Quit", ""},
	}
}

// MenuModel is the home screen shown when pmgr runs with no command.
type MenuModel struct {
	styles *styles.Styles
	items  []menuItem
	cursor int
	choice MenuAction
}

// NewMenu creates the home menu.
func NewMenu(styleSet *styles.Styles) *MenuModel {
	return &MenuModel{
		styles: styleSet,
		items:  menuItems(),
	}
}

// Choice returns the picked action, MenuNone if the menu was dismissed.
func (m *MenuModel) Choice() MenuAction {
	return m.choice
}

// Init implements tea.Model.
func (m *MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter":
		m.choice = m.items[m.cursor].action

		return m, tea.Quit

	case "q", "esc", "ctrl+c":
		m.choice = MenuNone

		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m *MenuModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("pmgr — package manager"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.title
		if item.description != "" {
			line += m.styles.MutedText.Render("  — " + item.description)
		}

		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("▸ " + item.title))
			if item.description != "" {
				b.WriteString(m.styles.MutedText.Render("  — " + item.description))
			}
		} else {
			b.WriteString("  " + line)
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("↑/↓ move · enter choose · q quit"))

	return b.String()
}
