// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the command-line interface: argument parsing,
// flow glue between the provider, selector, router, and dispatcher.
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"pmgr/internal/config"
	"pmgr/internal/console"
	"pmgr/internal/tui/styles"
)

// CLI wires the command tree to the package flows.
type CLI struct {
	app        *cli.Command
	verbose    bool
	plain      bool
	yes        bool
	settings   config.Settings
	styles     *styles.Styles
	userThemes map[string]styles.Palette
}

// NewCLI creates the pmgr command tree.
func NewCLI() *CLI {
	app := &CLI{}

	app.app = &cli.Command{
		Name:    "pmgr",
		Usage:   "Interactive package manager front-end for Arch Linux",
		Suggest: true,
		Description: `Fuzzy-searchable install, remove, and browse flows on top of
pacman and yay.

ESSENTIAL COMMANDS:
  pmgr                      Open the interactive menu
  pmgr install              Pick packages to install
  pmgr install firefox      Install directly, no selector
  pmgr remove -y vim        Remove without confirmation
  pmgr search browser       Search both repositories

Official repository packages run through sudo pacman; AUR packages run
through yay, which handles its own elevation.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "plain output without formatting for scripts",
				Destination: &app.plain,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return app.initConfig(ctx, cmd)
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return app.runMenu(ctx)
		},
		Commands: app.createCommands(),
	}

	return app
}

// Run executes the CLI with the given arguments.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

// initConfig loads display preferences before any command runs.
// Settings are advisory: absence or corruption falls back to defaults
// with at most a warning.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	console.DefaultOutput.SetMode(app.verbose, app.plain)

	settings, ok := config.LoadSettings(config.SettingsPath())
	if !ok {
		console.DefaultOutput.Warningf("settings file unreadable, using defaults")
	}

	app.settings = settings

	userThemes, err := styles.LoadUserThemes(config.ThemesPath())
	if err != nil {
		console.DefaultOutput.Warningf("%v", err)
	}

	app.userThemes = userThemes
	app.styles = styles.FromPalette(styles.ResolvePalette(settings.Theme, userThemes))

	return ctx, nil
}

func (app *CLI) createCommands() []*cli.Command {
	return []*cli.Command{
		app.createInstallCommand(),
		app.createRemoveCommand(),
		app.createSearchCommand(),
		app.createListCommand(),
		app.createUpdateCommand(),
	}
}

func (app *CLI) createInstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Aliases:   []string{"i"},
		Usage:     "Install packages (interactive when no names are given)",
		ArgsUsage: "[names...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "force the interactive selector",
			},
			&cli.BoolFlag{
				Name:        "no-interactive",
				Aliases:     []string{"y"},
				Usage:       "skip the selector and all confirmations",
				Destination: &app.yes,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runInstall(ctx, cmd.Args().Slice(), cmd.Bool("interactive"))
		},
	}
}

func (app *CLI) createRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"r"},
		Usage:     "Remove packages (interactive when no names are given)",
		ArgsUsage: "[names...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "force the interactive selector",
			},
			&cli.BoolFlag{
				Name:        "no-interactive",
				Aliases:     []string{"y"},
				Usage:       "skip the selector and all confirmations",
				Destination: &app.yes,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runRemove(ctx, cmd.Args().Slice(), cmd.Bool("interactive"))
		},
	}
}

func (app *CLI) createSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search packages in both repositories",
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return cli.Exit("search query required", 2)
			}

			return app.runSearch(ctx, args[0])
		},
	}
}

func (app *CLI) createListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"l"},
		Usage:   "List installed packages",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "browse installed packages with live preview",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runList(ctx, cmd.Bool("interactive"))
		},
	}
}

func (app *CLI) createUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:    "update",
		Aliases: []string{"u"},
		Usage:   "Upgrade every installed package",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return app.runUpdate(ctx)
		},
	}
}
