// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui runs the interactive screens. Raw mode and the alternate
// screen are owned by the bubbletea runtime, which restores the
// terminal on every exit path, including panics and interrupts.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"pmgr/internal/domain"
	"pmgr/internal/tui/models"
	"pmgr/internal/tui/styles"
)

// Selector drives interactive package selection sessions.
type Selector struct {
	styles *styles.Styles
}

// NewSelector creates a selector front-end with the given styling.
func NewSelector(styleSet *styles.Styles) *Selector {
	return &Selector{styles: styleSet}
}

// checkTerminal fails before any terminal state is touched, so an
// unusable output device never ends up half-configured.
func checkTerminal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return domain.ErrTerminalUnavailable
	}

	return nil
}

// Run executes one selection session and returns the confirmed
// packages. Cancellation returns domain.ErrCancelled and guarantees no
// side effects.
func (s *Selector) Run(ctx context.Context, opts models.SelectorOptions, loader models.CandidateLoader, fetchInfo models.InfoFetcher) ([]domain.Package, error) {
	if err := checkTerminal(); err != nil {
		return nil, err
	}

	model := models.NewSelector(ctx, s.styles, opts, loader, fetchInfo)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("selector session: %w", err)
	}

	session, ok := final.(*models.SelectorModel)
	if !ok {
		return nil, domain.ErrCancelled
	}

	if loadErr := session.LoadErr(); loadErr != nil {
		return nil, loadErr
	}

	if session.Cancelled() {
		return nil, domain.ErrCancelled
	}

	return session.Result(), nil
}

// RunThemePicker shows the theme list and returns the picked name,
// empty when the picker was dismissed.
func (s *Selector) RunThemePicker(ctx context.Context, names []string, current string, user map[string]styles.Palette) (string, error) {
	if err := checkTerminal(); err != nil {
		return "", err
	}

	model := models.NewThemePicker(s.styles, names, current, user)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("theme picker session: %w", err)
	}

	picker, ok := final.(*models.ThemePickerModel)
	if !ok {
		return "", nil
	}

	return picker.Choice(), nil
}

// RunMenu shows the home menu and returns the chosen action.
func (s *Selector) RunMenu(ctx context.Context) (models.MenuAction, error) {
	if err := checkTerminal(); err != nil {
		return models.MenuNone, err
	}

	model := models.NewMenu(s.styles)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return models.MenuNone, fmt.Errorf("menu session: %w", err)
	}

	menu, ok := final.(*models.MenuModel)
	if !ok {
		return models.MenuNone, nil
	}

	return menu.Choice(), nil
}
