// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Fatal availability errors, detected before any work is attempted.
var (
	// ErrBackendUnavailable indicates neither pacman nor yay exists on
	// the system. Fatal at startup.
	ErrBackendUnavailable = errors.New("no package manager backend found (need pacman or yay)")
	// ErrTerminalUnavailable indicates interactive mode cannot be
	// entered. Fatal to interactive paths only.
	ErrTerminalUnavailable = errors.New("interactive mode requires a terminal")
)

// Selector outcomes.
var (
	// ErrCancelled is returned when the user aborts a selector session.
	// Nothing has been invoked and nothing should be.
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoPackages is returned when an operation ends up with zero
	// package names to act on.
	ErrNoPackages = errors.New("no packages specified")
)

// ClassificationError reports that the source probe for a single
// package name failed in a way that is neither "exists" nor "not
// found". Guessing a side would route the install to the wrong
// privilege path, so the whole invocation for that name aborts.
type ClassificationError struct {
	Name string
	Err  error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("cannot determine source of %q: %v", e.Name, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// InvocationError reports a backend process that exited non-zero. It
// names the backend and the package set so failures are never generic.
type InvocationError struct {
	Backend  string
	Packages []string
	ExitCode int
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s failed (exit %d) for %s",
		e.Backend, e.ExitCode, strings.Join(e.Packages, ", "))
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// WorstExitCode walks an error chain (including joined errors) and
// returns the highest backend exit code found, or fallback when the
// chain carries none.
func WorstExitCode(err error, fallback int) int {
	if err == nil {
		return 0
	}

	worst := 0
	collectExitCodes(err, &worst)

	if worst == 0 {
		return fallback
	}

	return worst
}

func collectExitCodes(err error, worst *int) {
	if err == nil {
		return
	}

	invErr := &InvocationError{}
	if errors.As(err, &invErr) && invErr.ExitCode > *worst {
		*worst = invErr.ExitCode
	}

	// errors.Join produces a multi-error; inspect every branch.
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, sub := range joined.Unwrap() {
			collectExitCodes(sub, worst)
		}
	}
}
