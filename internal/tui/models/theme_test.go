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

func pressTheme(m *ThemePickerModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)

	return cmd
}

func TestThemePickerStartsOnActiveTheme(t *testing.T) {
	t.Parallel()

	names := styles.ThemeNames(nil)
	picker := NewThemePicker(styles.New(), names, "nord", nil)

	cmd := pressTheme(picker, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, "nord", picker.Choice(), "enter on the initial cursor re-picks the active theme")
}

func TestThemePickerNavigation(t *testing.T) {
	t.Parallel()

	names := []string{"catppuccin", "default", "dracula"}
	picker := NewThemePicker(styles.New(), names, "catppuccin", nil)

	pressTheme(picker, tea.KeyMsg{Type: tea.KeyDown})
	pressTheme(picker, tea.KeyMsg{Type: tea.KeyDown})
	pressTheme(picker, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	pressTheme(picker, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "default", picker.Choice())
}

func TestThemePickerCursorStaysInBounds(t *testing.T) {
	t.Parallel()

	names := []string{"default", "nord"}
	picker := NewThemePicker(styles.New(), names, "default", nil)

	pressTheme(picker, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, picker.cursor)

	for range 5 {
		pressTheme(picker, tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, 1, picker.cursor)
}

func TestThemePickerDismissalKeepsCurrentTheme(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		picker := NewThemePicker(styles.New(), styles.ThemeNames(nil), "default", nil)
		pressTheme(picker, tea.KeyMsg{Type: tea.KeyDown})

		cmd := pressTheme(picker, key)

		require.NotNil(t, cmd)
		assert.Empty(t, picker.Choice())
	}
}

func TestThemePickerUnknownCurrentDefaultsToTop(t *testing.T) {
	t.Parallel()

	picker := NewThemePicker(styles.New(), []string{"default", "nord"}, "no-such-theme", nil)

	assert.Equal(t, 0, picker.cursor)
}
