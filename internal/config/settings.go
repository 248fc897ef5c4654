// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config resolves per-user paths and persists display
// preferences.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Layout orientations for the selector preview pane.
const (
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"
)

// Settings are display preferences read at startup. They never gate
// functionality: a missing or corrupt file falls back to defaults.
type Settings struct {
	Theme  string `json:"theme"`
	Layout string `json:"layout"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Theme:  "default",
		Layout: LayoutHorizontal,
	}
}

// GetXDGConfigHome returns the XDG config directory, with an
// environment override for testing.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns the XDG config directory with a
// custom environment value.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// Dir returns the pmgr configuration directory.
func Dir() string {
	return filepath.Join(GetXDGConfigHome(), "pmgr")
}

// SettingsPath returns the settings file location.
func SettingsPath() string {
	return filepath.Join(Dir(), "settings.json")
}

// ThemesPath returns the user theme overrides location.
func ThemesPath() string {
	return filepath.Join(Dir(), "themes.toml")
}

// LoadSettings reads settings from path, falling back to defaults when
// the file is absent or unparseable. Corruption is reported through
// the returned ok flag so callers can warn without failing.
func LoadSettings(path string) (settings Settings, ok bool) {
	settings = DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, os.IsNotExist(err)
	}

	loaded := DefaultSettings()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return settings, false
	}

	if loaded.Theme != "" {
		settings.Theme = loaded.Theme
	}

	if loaded.Layout == LayoutHorizontal || loaded.Layout == LayoutVertical {
		settings.Layout = loaded.Layout
	}

	return settings, true
}

// SaveSettings writes settings as pretty-printed JSON, creating the
// configuration directory when needed.
func SaveSettings(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}
