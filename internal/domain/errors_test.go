// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorstExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: 0},
		{name: "no invocation in chain", err: errors.New("plain"), want: 1},
		{
			name: "single invocation",
			err:  &InvocationError{Backend: "pacman", ExitCode: 2},
			want: 2,
		},
		{
			name: "wrapped invocation",
			err:  fmt.Errorf("context: %w", &InvocationError{Backend: "yay", ExitCode: 3}),
			want: 3,
		},
		{
			name: "joined errors pick the worst",
			err: errors.Join(
				&InvocationError{Backend: "pacman", ExitCode: 1},
				&InvocationError{Backend: "yay", ExitCode: 4},
			),
			want: 4,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, WorstExitCode(tc.err, 1))
		})
	}
}

func TestClassificationErrorUnwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("database locked")
	err := &ClassificationError{Name: "firefox", Err: cause}

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "firefox")
}

func TestPackageID(t *testing.T) {
	t.Parallel()

	qualified := Package{Name: "firefox", Repository: "extra"}
	assert.Equal(t, "extra/firefox", qualified.ID())

	bare := Package{Name: "firefox"}
	assert.Equal(t, "firefox", bare.ID())
}

func TestBareName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "firefox", BareName("extra/firefox"))
	assert.Equal(t, "firefox", BareName("firefox"))
	assert.Equal(t, "yay-bin", BareName("aur/yay-bin"))
}

func TestFilterValueIncludesDescription(t *testing.T) {
	t.Parallel()

	pkg := Package{Name: "firefox", Description: "Web Browser"}
	assert.Equal(t, "firefox Web Browser", pkg.FilterValue())

	bare := Package{Name: "firefox"}
	assert.Equal(t, "firefox", bare.FilterValue())
}
