// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

package pacman

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"pmgr/internal/domain"
)

// maxProbeWorkers bounds concurrent source probes so a large selection
// does not overwhelm the backend tool.
const maxProbeWorkers = 4

// ErrProbeUnavailable indicates the probe tool itself is missing.
var ErrProbeUnavailable = errors.New("probe tool not found")

// PrimarySource answers existence queries against the official
// repository index via `pacman -Si`. It implements domain.PackageSource
// so exit-code interpretation stays out of the router.
type PrimarySource struct {
	runner domain.CommandRunner
}

// NewPrimarySource creates the official-repository source probe.
func NewPrimarySource(runner domain.CommandRunner) *PrimarySource {
	return &PrimarySource{runner: runner}
}

// Name identifies the source in error messages.
func (s *PrimarySource) Name() string {
	return PrimaryTool
}

// Exists reports whether the official repository index contains name.
// pacman exits non-zero both for "not found" and for real failures, so
// the stderr text disambiguates: only the documented "was not found"
// diagnostic counts as a definitive no.
func (s *PrimarySource) Exists(ctx context.Context, name string) (bool, error) {
	if !s.runner.CommandExists(PrimaryTool) {
		return false, ErrProbeUnavailable
	}

	output, err := s.runner.Output(ctx, PrimaryTool, "-Si", domain.BareName(name))
	if err == nil {
		return true, nil
	}

	if strings.Contains(output, "was not found") {
		return false, nil
	}

	return false, err
}

// Router partitions package names between the primary and secondary
// repositories by probing the primary source per name.
type Router struct {
	primary domain.PackageSource
}

// NewRouter creates a router over the given primary source.
func NewRouter(primary domain.PackageSource) *Router {
	return &Router{primary: primary}
}

// Classify splits names into a complete, disjoint partition:
// names the primary index knows go to primary, a definitive "not
// found" goes to secondary (assumed AUR-only), and any other probe
// failure aborts with a ClassificationError naming the package.
// Probes are side-effect-free reads and run concurrently; the outputs
// are sorted so the partition is deterministic regardless of
// completion order.
func (r *Router) Classify(ctx context.Context, names []string) (primary, secondary []string, err error) {
	if len(names) == 0 {
		return nil, nil, nil
	}

	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxProbeWorkers)

	for _, name := range names {
		group.Go(func() error {
			exists, probeErr := r.primary.Exists(ctx, name)
			if probeErr != nil {
				return &domain.ClassificationError{Name: name, Err: probeErr}
			}

			mu.Lock()
			defer mu.Unlock()

			if exists {
				primary = append(primary, name)
			} else {
				secondary = append(secondary, name)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	sort.Strings(primary)
	sort.Strings(secondary)

	return primary, secondary, nil
}
