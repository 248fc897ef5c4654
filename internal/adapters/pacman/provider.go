// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package pacman implements the Arch Linux backend adapters: listing
// and info through pacman or yay, source classification, and the
// install/remove process handoff.
package pacman

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pmgr/internal/domain"
)

// Backend tool names.
const (
	PrimaryTool   = "pacman" // official repositories, needs sudo
	SecondaryTool = "yay"    // AUR helper, superset of pacman queries
)

const aurRepository = "aur"

// Provider implements the domain.PackageProvider port. At construction
// it probes for yay and prefers it for every query it supports, since
// yay surfaces both the official repositories and the AUR. Without yay
// only official packages are visible.
type Provider struct {
	runner domain.CommandRunner
	tool   string
}

// NewProvider detects the available backend. It fails with
// domain.ErrBackendUnavailable when neither tool exists, before any
// listing is attempted.
func NewProvider(runner domain.CommandRunner) (*Provider, error) {
	switch {
	case runner.CommandExists(SecondaryTool):
		return &Provider{runner: runner, tool: SecondaryTool}, nil
	case runner.CommandExists(PrimaryTool):
		return &Provider{runner: runner, tool: PrimaryTool}, nil
	default:
		return nil, domain.ErrBackendUnavailable
	}
}

// Tool returns the query backend in use (pacman or yay).
func (p *Provider) Tool() string {
	return p.tool
}

// HasSecondary reports whether the AUR helper is available.
func (p *Provider) HasSecondary() bool {
	return p.tool == SecondaryTool
}

// ListAvailable returns every installable package known to the backend.
func (p *Provider) ListAvailable(ctx context.Context) ([]domain.Package, error) {
	output, err := p.runner.Output(ctx, p.tool, "-Sl")
	if err != nil {
		return nil, fmt.Errorf("%s -Sl: %w", p.tool, err)
	}

	return parseSyncList(output), nil
}

// ListInstalled returns every package currently on the system.
func (p *Provider) ListInstalled(ctx context.Context) ([]domain.Package, error) {
	output, err := p.runner.Output(ctx, p.tool, "-Q")
	if err != nil {
		return nil, fmt.Errorf("%s -Q: %w", p.tool, err)
	}

	return parseInstalledList(output), nil
}

// Search returns packages matching the backend's own search. A query
// with zero hits is success with an empty slice: pacman exits non-zero
// with no output on no matches, so that exit status alone is not an
// error here. An error without an exit status means the process never
// ran and is always fatal.
func (p *Provider) Search(ctx context.Context, query string) ([]domain.Package, error) {
	output, err := p.runner.Output(ctx, p.tool, "-Ss", query)

	packages := parseSearchOutput(output)

	if err != nil {
		var exited interface{ ExitCode() int }
		if !errors.As(err, &exited) {
			return nil, fmt.Errorf("%s -Ss %s: %w", p.tool, query, err)
		}

		if len(packages) == 0 && strings.TrimSpace(output) != "" {
			return nil, fmt.Errorf("%s -Ss %s: %w", p.tool, query, err)
		}
	}

	return packages, nil
}

// Info returns the backend's detail text for one package. The
// installed flag selects the local database (-Qi) over the sync
// database (-Si).
func (p *Provider) Info(ctx context.Context, name string, installed bool) (string, error) {
	flag := "-Si"
	if installed {
		flag = "-Qi"
	}

	output, err := p.runner.Output(ctx, p.tool, flag, domain.BareName(name))
	if err != nil {
		return "", fmt.Errorf("%s %s %s: %w", p.tool, flag, name, err)
	}

	return output, nil
}

// parseSyncList decomposes `-Sl` output. Each line reads
// "repo name version" with an optional "[installed]" trailer.
// Malformed lines are skipped, never fatal.
func parseSyncList(output string) []domain.Package {
	var packages []domain.Package

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		repo := fields[0]
		pkg := domain.Package{
			Repository: repo,
			Name:       fields[1],
			Version:    fields[2],
			Source:     sourceForRepository(repo),
			Installed:  strings.Contains(line, "[installed"),
		}
		packages = append(packages, pkg)
	}

	return packages
}

// parseInstalledList decomposes `-Q` output: "name version" per line.
func parseInstalledList(output string) []domain.Package {
	var packages []domain.Package

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		packages = append(packages, domain.Package{
			Name:      fields[0],
			Version:   fields[1],
			Installed: true,
		})
	}

	return packages
}

// parseSearchOutput decomposes `-Ss` output, which comes in two-line
// blocks: "repo/name version [trailers]" followed by an indented
// description. A header without a description still yields an entry.
func parseSearchOutput(output string) []domain.Package {
	var (
		packages []domain.Package
		current  *domain.Package
	)

	flush := func() {
		if current != nil {
			packages = append(packages, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			if current != nil {
				current.Description = strings.TrimSpace(line)
				flush()
			}

			continue
		}

		flush()

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		repo, name, ok := strings.Cut(fields[0], "/")
		if !ok {
			continue
		}

		pkg := domain.Package{
			Repository: repo,
			Name:       name,
			Source:     sourceForRepository(repo),
			Installed:  strings.Contains(line, "[installed"),
		}
		if len(fields) > 1 {
			pkg.Version = fields[1]
		}

		current = &pkg
	}

	flush()

	return packages
}

func sourceForRepository(repo string) domain.Source {
	if repo == aurRepository {
		return domain.SourceSecondary
	}

	return domain.SourcePrimary
}
