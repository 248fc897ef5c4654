// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"pmgr/internal/domain"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "missing backend",
			err:  domain.ErrBackendUnavailable,
			want: ExitBackendMissing,
		},
		{
			name: "no terminal",
			err:  fmt.Errorf("install: %w", domain.ErrTerminalUnavailable),
			want: ExitSystemError,
		},
		{
			name: "nothing to do",
			err:  domain.ErrNoPackages,
			want: ExitUsageError,
		},
		{
			name: "unclassifiable package",
			err:  &domain.ClassificationError{Name: "firefox", Err: errors.New("probe failed")},
			want: ExitNotFoundError,
		},
		{
			name: "backend failure propagates its exit code",
			err:  &domain.InvocationError{Backend: "pacman", ExitCode: 4},
			want: 4,
		},
		{
			name: "both backends failed, worst wins",
			err: errors.Join(
				&domain.InvocationError{Backend: "pacman", ExitCode: 1},
				&domain.InvocationError{Backend: "yay", ExitCode: 3},
			),
			want: 3,
		},
		{
			name: "anything else",
			err:  errors.New("unexpected"),
			want: ExitGeneralError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, exitCodeFor(tc.err))
		})
	}
}
