// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package pacman

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmgr/internal/adapters/platform"
	"pmgr/internal/console"
	"pmgr/internal/domain"
)

func newTestDispatcher() (*Dispatcher, *platform.MockCommandRunner) {
	runner := platform.NewMockCommandRunner()

	return NewDispatcher(runner, &console.OutputState{Plain: true}), runner
}

func TestInstallInvokesBothBackends(t *testing.T) {
	t.Parallel()

	dispatcher, runner := newTestDispatcher()

	err := dispatcher.Install(context.Background(), []string{"firefox", "vim"}, []string{"yay-bin"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sudo pacman -S --needed firefox vim",
		"yay -S --needed yay-bin",
	}, runner.Calls)
}

func TestRemoveInvokesBothBackends(t *testing.T) {
	t.Parallel()

	dispatcher, runner := newTestDispatcher()

	err := dispatcher.Remove(context.Background(), []string{"vim"}, []string{"paru"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sudo pacman -Rns vim",
		"yay -Rns paru",
	}, runner.Calls)
}

func TestEmptySetsAreSkipped(t *testing.T) {
	t.Parallel()

	dispatcher, runner := newTestDispatcher()

	err := dispatcher.Install(context.Background(), nil, []string{"paru"})
	require.NoError(t, err)
	assert.Equal(t, []string{"yay -S --needed paru"}, runner.Calls)

	dispatcher, runner = newTestDispatcher()

	err = dispatcher.Install(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, runner.Calls, "no backend runs with nothing to do")
}

func TestPrimaryFailureDoesNotSuppressSecondary(t *testing.T) {
	t.Parallel()

	dispatcher, runner := newTestDispatcher()
	runner.SetResult("sudo pacman -S --needed firefox", platform.MockResult{Err: &platform.FakeExitError{Code: 1}})

	err := dispatcher.Install(context.Background(), []string{"firefox"}, []string{"paru"})
	require.Error(t, err)

	assert.Equal(t, []string{
		"sudo pacman -S --needed firefox",
		"yay -S --needed paru",
	}, runner.Calls, "the secondary set still runs after a primary failure")

	invErr := &domain.InvocationError{}
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, PrimaryTool, invErr.Backend)
	assert.Equal(t, 1, invErr.ExitCode)
}

func TestCombinedErrorCarriesWorstExitCode(t *testing.T) {
	t.Parallel()

	dispatcher, runner := newTestDispatcher()
	runner.SetResult("sudo pacman -S --needed a", platform.MockResult{Err: &platform.FakeExitError{Code: 1}})
	runner.SetResult("yay -S --needed b", platform.MockResult{Err: &platform.FakeExitError{Code: 4}})

	err := dispatcher.Install(context.Background(), []string{"a"}, []string{"b"})
	require.Error(t, err)

	assert.Equal(t, 4, domain.WorstExitCode(err, 1))
}

func TestUpdatePrefersSecondaryTool(t *testing.T) {
	t.Parallel()

	dispatcher, runner := newTestDispatcher()
	runner.Existing["yay"] = true

	require.NoError(t, dispatcher.Update(context.Background()))
	assert.Equal(t, []string{"yay -Syu"}, runner.Calls)

	dispatcher, runner = newTestDispatcher()
	runner.Existing["yay"] = false

	require.NoError(t, dispatcher.Update(context.Background()))
	assert.Equal(t, []string{"sudo pacman -Syu"}, runner.Calls)
}
