// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides real command execution for the backend
// package tools.
package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// CommandRunner implements the domain.CommandRunner port for real
// system commands.
type CommandRunner struct {
	verbose bool
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(verbose bool) *CommandRunner {
	return &CommandRunner{verbose: verbose}
}

// Run executes a command with stdin/stdout/stderr connected directly to
// the terminal. The backend owns the terminal until it exits, so its
// confirmations, password prompts, and progress bars work unchanged.
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) error {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "Running: %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// RunSudo runs a command with sudo privileges and inherited streams.
func (r *CommandRunner) RunSudo(ctx context.Context, name string, args ...string) error {
	allArgs := append([]string{name}, args...)

	return r.Run(ctx, "sudo", allArgs...)
}

// Output executes a command and captures combined stdout/stderr. On a
// non-zero exit the output is still returned alongside the error, so
// callers can interpret backend diagnostics.
func (r *CommandRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "Running (captured): %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	return string(output), err
}

// CommandExists checks if a command is available on PATH.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

// MockResult is a canned outcome for one command line.
type MockResult struct {
	Output string
	Err    error
}

// MockCommandRunner implements the domain.CommandRunner port for tests.
// Results are keyed by the full command line, space-joined. Safe for
// concurrent use: the router probes packages in parallel.
type MockCommandRunner struct {
	mu       sync.Mutex
	Results  map[string]MockResult
	Existing map[string]bool // command name -> on PATH
	Calls    []string        // every command line executed, in order
}

// NewMockCommandRunner creates a mock runner with no canned results.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Results:  make(map[string]MockResult),
		Existing: make(map[string]bool),
	}
}

// SetResult sets the canned result for a command line.
func (r *MockCommandRunner) SetResult(commandLine string, result MockResult) {
	r.Results[commandLine] = result
}

// Run records the command and returns its canned error, if any.
func (r *MockCommandRunner) Run(_ context.Context, name string, args ...string) error {
	line := commandLine(name, args)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, line)

	return r.Results[line].Err
}

// RunSudo records the command prefixed with sudo.
func (r *MockCommandRunner) RunSudo(ctx context.Context, name string, args ...string) error {
	allArgs := append([]string{name}, args...)

	return r.Run(ctx, "sudo", allArgs...)
}

// Output records the command and returns its canned output and error.
func (r *MockCommandRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	line := commandLine(name, args)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, line)
	result := r.Results[line]

	return result.Output, result.Err
}

// CommandExists reports the configured PATH state, defaulting to true
// when no entry exists so simple tests need no setup.
func (r *MockCommandRunner) CommandExists(name string) bool {
	exists, configured := r.Existing[name]
	if !configured {
		return true
	}

	return exists
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// FakeExitError simulates a process exit status in tests. It satisfies
// the same ExitCode() accessor as exec.ExitError.
type FakeExitError struct {
	Code int
}

func (e *FakeExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the simulated exit status.
func (e *FakeExitError) ExitCode() int {
	return e.Code
}
