// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "context"

// CommandRunner defines the interface for executing backend tools.
// Implemented by adapters/platform for real commands and by a mock for
// tests.
type CommandRunner interface {
	// Run executes a command with stdin/stdout/stderr inherited from
	// the terminal, so the backend's own prompts reach the user.
	Run(ctx context.Context, name string, args ...string) error

	// RunSudo is Run with privilege escalation prepended.
	RunSudo(ctx context.Context, name string, args ...string) error

	// Output executes a command and captures combined output. The
	// error, if any, still carries the process exit status.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// CommandExists checks if a command is available on PATH.
	CommandExists(name string) bool
}

// PackageProvider enumerates packages and fetches per-package detail
// text, normalized from whichever backend tool is present.
type PackageProvider interface {
	// ListAvailable returns every package the backend can install.
	ListAvailable(ctx context.Context) ([]Package, error)

	// ListInstalled returns every package currently on the system.
	ListInstalled(ctx context.Context) ([]Package, error)

	// Search returns packages matching the backend's own search.
	// Zero results is success with an empty slice.
	Search(ctx context.Context, query string) ([]Package, error)

	// Info returns the backend's detail text for one package.
	Info(ctx context.Context, name string, installed bool) (string, error)
}

// PackageSource answers whether a package exists in one repository.
// One implementation per backend keeps exit-code interpretation out of
// the router, and new sources can be added without touching dispatch.
type PackageSource interface {
	// Name identifies the source in error messages.
	Name() string

	// Exists reports whether the repository index contains name. An
	// error means the probe itself failed and the answer is unknown.
	Exists(ctx context.Context, name string) (bool, error)
}
