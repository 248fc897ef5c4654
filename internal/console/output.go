// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console provides TTY-aware terminal output helpers.
package console

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputState holds global output configuration.
type OutputState struct {
	Verbose bool
	Plain   bool
}

// DefaultOutput provides output formatting utilities.
var DefaultOutput = &OutputState{} //nolint:gochecknoglobals

// SetMode configures output mode.
func (o *OutputState) SetMode(verbose, plain bool) {
	o.Verbose = verbose
	o.Plain = plain
}

// IsTTY checks if output is going to a terminal (not piped/redirected).
func (o *OutputState) IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Bold formats text with bold when in TTY, uppercase when piped.
func (o *OutputState) Bold(text string) string {
	if o.Plain {
		return text
	}

	// Check no-color.org standards
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return text
	}

	if o.IsTTY(os.Stdout.Fd()) {
		return "\033[1m" + text + "\033[0m"
	}

	return strings.ToUpper(text)
}

// Progressf writes progress messages to stderr (only if verbose).
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.Plain {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Infof writes informational messages to stderr.
func (o *OutputState) Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Successf writes success messages to stderr.
func (o *OutputState) Successf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr (always visible).
func (o *OutputState) Warningf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
	}
}

// Errorf writes error messages to stderr (always visible).
func (o *OutputState) Errorf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
	}
}

// Result writes primary command output to stdout.
func (o *OutputState) Result(data any) {
	_, _ = fmt.Fprintf(os.Stdout, "%v\n", data)
}
