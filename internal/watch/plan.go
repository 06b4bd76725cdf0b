// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"path"
	"path/filepath"
	"strings"

	"webdesk-cli/internal/task"
	"webdesk-cli/pkg/metadata"
)

// Step is one task invocation a change plan asks for.
type Step struct {
	Task string
	Args []string
}

// Plan maps a batch of changed paths (relative to the installation root)
// to the tasks that bring the generated outputs back in sync:
//
//   - configuration fragments regenerate every settings document,
//   - package descriptors regenerate the manifest as well,
//   - package sources rebuild just that package,
//   - core sources rebuild the distribution.
//
// Steps are deduplicated and ordered builds-first, so regenerated
// settings always describe freshly built artifacts.
func Plan(changed []string) []Step {
	var (
		dist     bool
		packages []string
		seen     = map[string]bool{}
		manifest bool
		settings bool
	)
	for _, rel := range changed {
		p := filepath.ToSlash(rel)
		switch {
		case path.Base(p) == metadata.DescriptorName:
			manifest = true
			settings = true
		case strings.HasPrefix(p, "src/"):
			dist = true
		case strings.HasPrefix(p, "packages/"):
			if name, ok := packageFor(p); ok && !seen[name] {
				seen[name] = true
				packages = append(packages, name)
			}
		default:
			// Everything else that survives the watch globs is a
			// configuration fragment, including overlay config trees.
			settings = true
		}
	}

	var steps []Step
	if dist {
		steps = append(steps, Step{Task: task.BuildDist})
	}
	if len(packages) > 0 {
		steps = append(steps, Step{Task: task.BuildPackage, Args: packages})
	}
	if manifest {
		steps = append(steps, Step{Task: task.Manifest})
	}
	if settings {
		steps = append(steps,
			Step{Task: task.SettingsClient},
			Step{Task: task.SettingsServer},
			Step{Task: task.ServerConf},
		)
	}
	return steps
}

// packageFor extracts the qualified "repo/name" from a path shaped
// packages/<repo>/<name>/...
func packageFor(p string) (string, bool) {
	parts := strings.Split(p, "/")
	if len(parts) < 4 {
		return "", false
	}
	return parts[1] + "/" + parts[2], true
}

// DefaultPatterns returns the watch globs covering the inputs Plan knows
// how to react to.
func DefaultPatterns() []string {
	return []string{
		"config/*.json",
		"overlays/**/config/*.json",
		"packages/**",
		"src/**",
	}
}
