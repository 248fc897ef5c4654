// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package pacman

import (
	"context"
	"errors"
	"strings"

	"pmgr/internal/console"
	"pmgr/internal/domain"
)

// Dispatcher hands the final package sets to the backend tools with
// inherited standard streams. Official packages go through sudo pacman;
// AUR packages go through yay, which elevates on its own.
type Dispatcher struct {
	runner domain.CommandRunner
	output *console.OutputState
}

// NewDispatcher creates a dispatcher over the given runner.
func NewDispatcher(runner domain.CommandRunner, output *console.OutputState) *Dispatcher {
	return &Dispatcher{runner: runner, output: output}
}

// Install installs the primary set, then the secondary set. The order
// is announced before anything runs. A failure on one side never
// suppresses the other; both outcomes are reported and the combined
// error carries each failed invocation.
func (d *Dispatcher) Install(ctx context.Context, primary, secondary []string) error {
	return d.dispatch(ctx, "install", primary, secondary)
}

// Remove removes the primary set, then the secondary set, with the
// same ordering and failure semantics as Install.
func (d *Dispatcher) Remove(ctx context.Context, primary, secondary []string) error {
	return d.dispatch(ctx, "remove", primary, secondary)
}

// Update runs a full system upgrade as a plain terminal handoff,
// through yay when present so AUR packages are covered too.
func (d *Dispatcher) Update(ctx context.Context) error {
	if d.runner.CommandExists(SecondaryTool) {
		d.output.Infof("Updating system with %s...", SecondaryTool)

		if err := d.runner.Run(ctx, SecondaryTool, "-Syu"); err != nil {
			return d.invocationError(SecondaryTool, nil, err)
		}

		return nil
	}

	d.output.Infof("Updating system with %s...", PrimaryTool)

	if err := d.runner.RunSudo(ctx, PrimaryTool, "-Syu"); err != nil {
		return d.invocationError(PrimaryTool, nil, err)
	}

	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, operation string, primary, secondary []string) error {
	d.announce(operation, primary, secondary)

	var errs []error

	// Empty sets are skipped outright: pacman and yay open their own
	// interactive menus when invoked with no package arguments.
	if len(primary) > 0 {
		if err := d.runPrimary(ctx, operation, primary); err != nil {
			errs = append(errs, err)
		}
	}

	if len(secondary) > 0 {
		if err := d.runSecondary(ctx, operation, secondary); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// announce discloses the execution plan before control is ceded to the
// backends.
func (d *Dispatcher) announce(operation string, primary, secondary []string) {
	if len(primary) > 0 {
		d.output.Infof("Will %s from official repositories (sudo %s): %s",
			operation, PrimaryTool, strings.Join(primary, ", "))
	}

	if len(secondary) > 0 {
		d.output.Infof("Will %s from AUR (%s): %s",
			operation, SecondaryTool, strings.Join(secondary, ", "))
	}
}

func (d *Dispatcher) runPrimary(ctx context.Context, operation string, names []string) error {
	if err := d.runner.RunSudo(ctx, PrimaryTool, operationArgs(operation, names)...); err != nil {
		reported := d.invocationError(PrimaryTool, names, err)
		d.output.Errorf("%v", reported)

		return reported
	}

	d.output.Successf("%s: %s complete", PrimaryTool, operation)

	return nil
}

func (d *Dispatcher) runSecondary(ctx context.Context, operation string, names []string) error {
	if err := d.runner.Run(ctx, SecondaryTool, operationArgs(operation, names)...); err != nil {
		reported := d.invocationError(SecondaryTool, names, err)
		d.output.Errorf("%v", reported)

		return reported
	}

	d.output.Successf("%s: %s complete", SecondaryTool, operation)

	return nil
}

// operationArgs maps an operation to the documented backend argv:
// install uses -S --needed (skip reinstalls), remove uses -Rns
// (package, dependencies, and config backups).
func operationArgs(operation string, names []string) []string {
	if operation == "remove" {
		return append([]string{"-Rns"}, names...)
	}

	return append([]string{"-S", "--needed"}, names...)
}

func (d *Dispatcher) invocationError(backend string, names []string, err error) error {
	return &domain.InvocationError{
		Backend:  backend,
		Packages: names,
		ExitCode: exitCodeOf(err),
		Err:      err,
	}
}

// exitCodeOf extracts the process exit status from an error chain.
// Both exec.ExitError and the test fake expose ExitCode().
func exitCodeOf(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return 1
}
