// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsAbsentFileIsClean(t *testing.T) {
	t.Parallel()

	settings, ok := LoadSettings(filepath.Join(t.TempDir(), "settings.json"))

	assert.True(t, ok, "a missing file is the normal first-run state")
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettingsCorruptFileFallsBack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	settings, ok := LoadSettings(path)

	assert.False(t, ok, "corruption is reported so the caller can warn")
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettingsRejectsUnknownLayout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"nord","layout":"diagonal"}`), 0o600))

	settings, ok := LoadSettings(path)

	assert.True(t, ok)
	assert.Equal(t, "nord", settings.Theme)
	assert.Equal(t, LayoutHorizontal, settings.Layout, "unknown layouts fall back to the default")
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pmgr", "settings.json")
	saved := Settings{Theme: "dracula", Layout: LayoutVertical}

	require.NoError(t, SaveSettings(path, saved))

	loaded, ok := LoadSettings(path)
	assert.True(t, ok)
	assert.Equal(t, saved, loaded)
}

func TestGetXDGConfigHomeWithEnv(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/custom/config", GetXDGConfigHomeWithEnv("/custom/config"))

	fallback := GetXDGConfigHomeWithEnv("")
	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, ".config"), fallback)
	}
}
