// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for pmgr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"pmgr/internal/cli"
	"pmgr/internal/domain"
)

// Exit codes following Unix conventions.
const (
	ExitSuccess        = 0  // Command completed successfully
	ExitGeneralError   = 1  // General errors
	ExitUsageError     = 2  // Invalid arguments/usage
	ExitNotFoundError  = 5  // Package source could not be determined
	ExitBackendMissing = 10 // No pacman or yay on the system
	ExitSystemError    = 12 // Terminal or filesystem issues
)

func main() {
	os.Exit(run())
}

func run() int {
	// One pmgr at a time: concurrent instances would race the pacman
	// database lock and each other's terminal handoffs.
	lockPath := filepath.Join(os.TempDir(), "pmgr.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return ExitSystemError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another pmgr instance is already running\n")

		return ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	app := cli.NewCLI()

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return exitCodeFor(err)
	}

	return ExitSuccess
}

// exitCodeFor maps the error taxonomy to exit codes. Backend
// invocation failures propagate the worst sub-invocation exit code,
// so scripts see what the backend reported.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBackendUnavailable):
		return ExitBackendMissing
	case errors.Is(err, domain.ErrTerminalUnavailable):
		return ExitSystemError
	case errors.Is(err, domain.ErrNoPackages):
		return ExitUsageError
	}

	classErr := &domain.ClassificationError{}
	if errors.As(err, &classErr) {
		return ExitNotFoundError
	}

	return domain.WorstExitCode(err, ExitGeneralError)
}
