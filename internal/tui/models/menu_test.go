// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmgr/internal/tui/styles"
)

func pressMenu(m *MenuModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)

	return cmd
}

func TestMenuDefaultsToInstall(t *testing.T) {
	t.Parallel()

	menu := NewMenu(styles.New())

	cmd := pressMenu(menu, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, MenuInstall, menu.Choice())
}

func TestMenuNavigation(t *testing.T) {
	t.Parallel()

	menu := NewMenu(styles.New())

	pressMenu(menu, tea.KeyMsg{Type: tea.KeyDown})
	pressMenu(menu, tea.KeyMsg{Type: tea.KeyDown})
	pressMenu(menu, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, MenuBrowse, menu.Choice())
}

func TestMenuVimKeys(t *testing.T) {
	t.Parallel()

	menu := NewMenu(styles.New())

	pressMenu(menu, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	pressMenu(menu, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	pressMenu(menu, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	pressMenu(menu, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, MenuRemove, menu.Choice())
}

func TestMenuCursorStaysInBounds(t *testing.T) {
	t.Parallel()

	menu := NewMenu(styles.New())

	pressMenu(menu, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, menu.cursor)

	for range 10 {
		pressMenu(menu, tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, len(menu.items)-1, menu.cursor)
}

func TestMenuThemeEntry(t *testing.T) {
	t.Parallel()

	menu := NewMenu(styles.New())

	for range 4 {
		pressMenu(menu, tea.KeyMsg{Type: tea.KeyDown})
	}

	pressMenu(menu, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, MenuTheme, menu.Choice())
}

func TestMenuDismissal(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		menu := NewMenu(styles.New())
		pressMenu(menu, tea.KeyMsg{Type: tea.KeyDown})

		cmd := pressMenu(menu, key)

		require.NotNil(t, cmd)
		assert.Equal(t, MenuNone, menu.Choice())
	}
}
