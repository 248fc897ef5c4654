// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package styles

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Palette is the color set a theme provides. Every field is an ANSI or
// hex color string accepted by lipgloss.
type Palette struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
	Success   string `toml:"success"`
	Warning   string `toml:"warning"`
	Error     string `toml:"error"`
	Muted     string `toml:"muted"`
	Highlight string `toml:"highlight"`
	Text      string `toml:"text"`
}

// Built-in palettes, matching the themes the settings file can name.
func builtinPalettes() map[string]Palette {
	return map[string]Palette{
		"default": {
			Primary:   "#7aa2f7",
			Secondary: "#bb9af7",
			Success:   "#9ece6a",
			Warning:   "#e0af68",
			Error:     "#f7768e",
			Muted:     "#565f89",
			Highlight: "#283457",
			Text:      "#c0caf5",
		},
		"dracula": {
			Primary:   "#bd93f9",
			Secondary: "#ff79c6",
			Success:   "#50fa7b",
			Warning:   "#f1fa8c",
			Error:     "#ff5555",
			Muted:     "#6272a4",
			Highlight: "#44475a",
			Text:      "#f8f8f2",
		},
		"nord": {
			Primary:   "#88c0d0",
			Secondary: "#81a1c1",
			Success:   "#a3be8c",
			Warning:   "#ebcb8b",
			Error:     "#bf616a",
			Muted:     "#4c566a",
			Highlight: "#3b4252",
			Text:      "#eceff4",
		},
		"gruvbox": {
			Primary:   "#fabd2f",
			Secondary: "#83a598",
			Success:   "#b8bb26",
			Warning:   "#fe8019",
			Error:     "#fb4934",
			Muted:     "#928374",
			Highlight: "#3c3836",
			Text:      "#ebdbb2",
		},
		"catppuccin": {
			Primary:   "#cba6f7",
			Secondary: "#89b4fa",
			Success:   "#a6e3a1",
			Warning:   "#f9e2af",
			Error:     "#f38ba8",
			Muted:     "#6c7086",
			Highlight: "#313244",
			Text:      "#cdd6f4",
		},
	}
}

// userThemesFile is the on-disk shape of themes.toml: a table of named
// palettes, for example [themes.solarized].
type userThemesFile struct {
	Themes map[string]Palette `toml:"themes"`
}

// LoadUserThemes parses user palette overrides from a themes.toml
// file. A missing file is fine (no overrides); a malformed one is an
// error so the user learns their palette did not apply.
func LoadUserThemes(path string) (map[string]Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read themes: %w", err)
	}

	return ParseUserThemes(data)
}

// ParseUserThemes decodes the themes.toml payload.
func ParseUserThemes(data []byte) (map[string]Palette, error) {
	var file userThemesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse themes: %w", err)
	}

	return file.Themes, nil
}

// ResolvePalette picks the palette for a theme name, checking user
// overrides before the built-ins and falling back to the default
// palette for unknown names.
func ResolvePalette(name string, user map[string]Palette) Palette {
	name = strings.ToLower(strings.TrimSpace(name))

	if palette, ok := user[name]; ok {
		return fillPalette(palette)
	}

	builtin := builtinPalettes()
	if palette, ok := builtin[name]; ok {
		return palette
	}

	return builtin["default"]
}

// ThemeNames lists the selectable theme names, built-ins first.
func ThemeNames(user map[string]Palette) []string {
	builtin := builtinPalettes()

	names := make([]string, 0, len(builtin)+len(user))
	for name := range builtin {
		names = append(names, name)
	}

	for name := range user {
		if _, shadowed := builtin[name]; !shadowed {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// fillPalette substitutes default colors for any field a user palette
// leaves empty, so a partial override still renders.
func fillPalette(palette Palette) Palette {
	defaults := builtinPalettes()["default"]

	if palette.Primary == "" {
		palette.Primary = defaults.Primary
	}

	if palette.Secondary == "" {
		palette.Secondary = defaults.Secondary
	}

	if palette.Success == "" {
		palette.Success = defaults.Success
	}

	if palette.Warning == "" {
		palette.Warning = defaults.Warning
	}

	if palette.Error == "" {
		palette.Error = defaults.Error
	}

	if palette.Muted == "" {
		palette.Muted = defaults.Muted
	}

	if palette.Highlight == "" {
		palette.Highlight = defaults.Highlight
	}

	if palette.Text == "" {
		palette.Text = defaults.Text
	}

	return palette
}
