// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"pmgr/internal/adapters/pacman"
	"pmgr/internal/adapters/platform"
	"pmgr/internal/config"
	"pmgr/internal/console"
	"pmgr/internal/domain"
	"pmgr/internal/tui"
	"pmgr/internal/tui/models"
	"pmgr/internal/tui/styles"
)

// backend bundles the adapters one command invocation needs. Built per
// command: no shared mutable state survives across flows.
type backend struct {
	provider   *pacman.Provider
	router     *pacman.Router
	dispatcher *pacman.Dispatcher
}

func (app *CLI) newBackend() (*backend, error) {
	runner := platform.NewCommandRunner(app.verbose)

	provider, err := pacman.NewProvider(runner)
	if err != nil {
		return nil, err
	}

	return &backend{
		provider:   provider,
		router:     pacman.NewRouter(pacman.NewPrimarySource(runner)),
		dispatcher: pacman.NewDispatcher(runner, console.DefaultOutput),
	}, nil
}

func (app *CLI) newSelector() *tui.Selector {
	return tui.NewSelector(app.styles)
}

// runInstall installs the named packages, or opens the selector over
// everything installable when no names are supplied.
func (app *CLI) runInstall(ctx context.Context, names []string, forceInteractive bool) error {
	be, err := app.newBackend()
	if err != nil {
		return err
	}

	if !be.provider.HasSecondary() {
		console.DefaultOutput.Warningf("yay not found: AUR packages are not visible")
	}

	if len(names) == 0 || forceInteractive {
		if app.yes && len(names) == 0 {
			return domain.ErrNoPackages
		}

		selected, err := app.newSelector().Run(ctx, models.SelectorOptions{
			Title:  "Install packages",
			Multi:  true,
			Layout: app.settings.Layout,
		}, be.provider.ListAvailable, be.provider.Info)
		if err != nil {
			return app.reportCancel(err)
		}

		names = packageNames(selected)
	}

	return app.dispatchOperation(ctx, be, "install", names)
}

// runRemove removes the named packages, or opens the selector over the
// installed set.
func (app *CLI) runRemove(ctx context.Context, names []string, forceInteractive bool) error {
	be, err := app.newBackend()
	if err != nil {
		return err
	}

	if len(names) == 0 || forceInteractive {
		if app.yes && len(names) == 0 {
			return domain.ErrNoPackages
		}

		selected, err := app.newSelector().Run(ctx, models.SelectorOptions{
			Title:     "Remove packages",
			Multi:     true,
			Installed: true,
			Layout:    app.settings.Layout,
		}, be.provider.ListInstalled, be.provider.Info)
		if err != nil {
			return app.reportCancel(err)
		}

		names = packageNames(selected)
	}

	return app.dispatchOperation(ctx, be, "remove", names)
}

// dispatchOperation routes names to their backends and hands off.
// Classification happens before any confirmation so the user sees the
// exact split between privilege paths.
func (app *CLI) dispatchOperation(ctx context.Context, be *backend, operation string, names []string) error {
	if len(names) == 0 {
		return domain.ErrNoPackages
	}

	bare := make([]string, 0, len(names))
	for _, name := range names {
		bare = append(bare, domain.BareName(name))
	}

	console.DefaultOutput.Progressf("Classifying %d package(s)...", len(bare))

	primary, secondary, err := be.router.Classify(ctx, bare)
	if err != nil {
		return err
	}

	confirmed, err := app.confirmPlan(operation, primary, secondary)
	if err != nil {
		return err
	}

	if !confirmed {
		console.DefaultOutput.Infof("Aborted.")

		return nil
	}

	if operation == "remove" {
		return be.dispatcher.Remove(ctx, primary, secondary)
	}

	return be.dispatcher.Install(ctx, primary, secondary)
}

// confirmPlan asks once before ceding the terminal to the backends.
// Skipped with -y and on non-TTY stdin, where the backend's own prompt
// is the only one that can work anyway.
func (app *CLI) confirmPlan(operation string, primary, secondary []string) (bool, error) {
	if app.yes || !console.DefaultOutput.IsTTY(os.Stdin.Fd()) {
		return true, nil
	}

	title := fmt.Sprintf("%s %d package(s)? (%d official, %d AUR)",
		console.DefaultOutput.Bold(operation), len(primary)+len(secondary), len(primary), len(secondary))

	confirmed := true

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}

		return false, fmt.Errorf("confirmation prompt: %w", err)
	}

	return confirmed, nil
}

// runSearch prints matches from both repositories to stdout.
func (app *CLI) runSearch(ctx context.Context, query string) error {
	be, err := app.newBackend()
	if err != nil {
		return err
	}

	if !be.provider.HasSecondary() {
		console.DefaultOutput.Warningf("yay not found: AUR packages are not visible")
	}

	console.DefaultOutput.Progressf("Searching for %q...", query)

	results, err := be.provider.Search(ctx, query)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		console.DefaultOutput.Infof("No packages found.")

		return nil
	}

	for _, pkg := range results {
		header := console.DefaultOutput.Bold(pkg.ID()) + " " + pkg.Version
		if pkg.Installed {
			header += " [installed]"
		}

		console.DefaultOutput.Result(header)

		if pkg.Description != "" {
			console.DefaultOutput.Result("    " + pkg.Description)
		}
	}

	return nil
}

// runList prints installed packages, or browses them with preview.
func (app *CLI) runList(ctx context.Context, interactive bool) error {
	be, err := app.newBackend()
	if err != nil {
		return err
	}

	if interactive {
		_, err := app.newSelector().Run(ctx, models.SelectorOptions{
			Title:     "Installed packages",
			Installed: true,
			Layout:    app.settings.Layout,
		}, be.provider.ListInstalled, be.provider.Info)

		// Browsing has no outcome to act on; leaving is not an error.
		return app.reportCancel(err)
	}

	installed, err := be.provider.ListInstalled(ctx)
	if err != nil {
		return err
	}

	for _, pkg := range installed {
		console.DefaultOutput.Result(pkg.Name + " " + pkg.Version)
	}

	return nil
}

// runUpdate hands the terminal to the backend for a full upgrade.
func (app *CLI) runUpdate(ctx context.Context) error {
	be, err := app.newBackend()
	if err != nil {
		return err
	}

	return be.dispatcher.Update(ctx)
}

// runMenu loops the home screen until the user quits. Cancelled flows
// come back to the menu; real failures are reported and end the loop.
// The selector is rebuilt each round so a theme change restyles it.
func (app *CLI) runMenu(ctx context.Context) error {
	for {
		action, err := app.newSelector().RunMenu(ctx)
		if err != nil {
			return err
		}

		var flowErr error

		switch action {
		case models.MenuInstall:
			flowErr = app.runInstall(ctx, nil, true)
		case models.MenuRemove:
			flowErr = app.runRemove(ctx, nil, true)
		case models.MenuBrowse:
			flowErr = app.runList(ctx, true)
		case models.MenuUpdate:
			flowErr = app.runUpdate(ctx)
		case models.MenuTheme:
			flowErr = app.runThemeSelection(ctx)
		case models.MenuNone, models.MenuQuit:
			return nil
		}

		if flowErr != nil {
			return flowErr
		}
	}
}

// runThemeSelection opens the theme picker and applies the choice for
// the rest of the session, persisting it for the next one.
func (app *CLI) runThemeSelection(ctx context.Context) error {
	names := styles.ThemeNames(app.userThemes)

	choice, err := app.newSelector().RunThemePicker(ctx, names, app.settings.Theme, app.userThemes)
	if err != nil {
		return err
	}

	if choice == "" || choice == app.settings.Theme {
		return nil
	}

	app.applyTheme(choice, config.SettingsPath())

	return nil
}

// applyTheme restyles the session and persists the choice. Persistence
// is best-effort, like loading: a read-only config dir costs the saved
// preference, never the session.
func (app *CLI) applyTheme(name, settingsPath string) {
	app.settings.Theme = name
	app.styles = styles.FromPalette(styles.ResolvePalette(name, app.userThemes))

	if err := config.SaveSettings(settingsPath, app.settings); err != nil {
		console.DefaultOutput.Warningf("could not save settings: %v", err)
	}
}

// reportCancel converts a user cancellation into a friendly message
// and a clean exit; other errors pass through.
func (app *CLI) reportCancel(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrCancelled) {
		console.DefaultOutput.Infof("No packages selected.")

		return nil
	}

	return err
}

func packageNames(packages []domain.Package) []string {
	names := make([]string, 0, len(packages))
	for _, pkg := range packages {
		names = append(names, pkg.Name)
	}

	return names
}
