// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package domain holds the core package model and the ports the
// adapters implement.
package domain

import "strings"

// Source identifies which repository a package belongs to and therefore
// which backend tool and privilege path handles it.
type Source string

// Package sources.
const (
	// SourcePrimary is an official repository package, installed and
	// removed through sudo pacman.
	SourcePrimary Source = "repo"
	// SourceSecondary is an AUR package, handled by the yay helper
	// which manages its own elevation.
	SourceSecondary Source = "aur"
)

// Package is one entry of a listing snapshot. Immutable once built; a
// new listing produces a new slice.
type Package struct {
	Name        string `json:"name"`
	Source      Source `json:"source"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Repository  string `json:"repository,omitempty"` // core, extra, aur, ...
	Installed   bool   `json:"installed,omitempty"`
}

// ID returns the qualified identifier shown in listings, for example
// "extra/firefox". Names are unique within a source, so the repository
// prefix keeps identifiers unambiguous across sources.
func (p Package) ID() string {
	if p.Repository == "" {
		return p.Name
	}

	return p.Repository + "/" + p.Name
}

// FilterValue is the text the fuzzy matcher ranks against.
func (p Package) FilterValue() string {
	if p.Description == "" {
		return p.Name
	}

	return p.Name + " " + p.Description
}

// BareName strips an optional "repository/" prefix from an identifier,
// accepting both plain names and qualified IDs on the CLI.
func BareName(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}

	return id
}
