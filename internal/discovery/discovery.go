// SPDX-License-Identifier: EPL-2.0

package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"webdesk-cli/internal/config"
	"webdesk-cli/pkg/fspath"
	"webdesk-cli/pkg/metadata"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// descriptorGlob matches descriptors one level below a search path: each
// package owns exactly one directory.
const descriptorGlob = "*/" + metadata.DescriptorName

// Discovery locates packages and theme assets for one configuration
// snapshot.
type Discovery struct {
	Tree    *config.Tree
	Runtime config.Runtime
	Logger  *log.Logger
}

// New creates a Discovery over a frozen tree.
func New(tree *config.Tree, rt config.Runtime, logger *log.Logger) *Discovery {
	if logger == nil {
		logger = log.Default()
	}
	return &Discovery{Tree: tree, Runtime: rt, Logger: logger}
}

// Repositories returns the configured repository order, defaulting to the
// single "default" repository.
func (d *Discovery) Repositories() []string {
	if repos := d.Tree.StringsAt("repositories"); len(repos) > 0 {
		return repos
	}
	return []string{"default"}
}

// Packages discovers all descriptors for the given repositories and returns
// them as a qualified-name-keyed set in discovery order.
//
// Descriptor reads fan out concurrently per repository; the first failing
// repository aborts the join. Results merge sequentially in the caller's
// repository order, so on a qualified-name collision across repositories the
// later repository wins. Within one repository, search paths are processed
// in order (base first, then overlays), and a later path likewise wins.
func (d *Discovery) Packages(ctx context.Context, repositories []string) (*PackageSet, error) {
	policy := d.enablePolicy()

	perRepo := make([]*PackageSet, len(repositories))

	g, ctx := errgroup.WithContext(ctx)
	for i, repository := range repositories {
		g.Go(func() error {
			found, err := d.discoverRepository(ctx, repository)
			if err != nil {
				return err
			}
			perRepo[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewPackageSet()
	for _, found := range perRepo {
		for _, meta := range found.All() {
			if !policy.admit(meta) {
				d.Logger.Debug("package dropped by enable policy", "package", meta.QualifiedName())
				continue
			}
			merged.Put(meta)
		}
	}

	return merged, nil
}

// discoverRepository reads every descriptor under one repository's search
// paths. Later search paths overwrite earlier ones on qualified-name
// collision.
func (d *Discovery) discoverRepository(ctx context.Context, repository string) (*PackageSet, error) {
	found := NewPackageSet()

	for _, searchPath := range d.searchPaths(repository) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		matches, err := doublestar.Glob(os.DirFS(searchPath), descriptorGlob)
		if err != nil {
			continue
		}
		sort.Strings(matches)

		for _, match := range matches {
			file := filepath.Join(searchPath, match)
			meta, err := metadata.Read(file, repository)
			if err != nil {
				return nil, err
			}
			found.Put(meta)
		}
	}

	return found, nil
}

// searchPaths computes a repository's descriptor search paths: the primary
// packages/<repository> directory first, then one path per overlay that
// actually provides packages for it.
func (d *Discovery) searchPaths(repository string) []string {
	paths := []string{d.Runtime.PackagesDir(repository)}

	for _, overlay := range d.Tree.StringsAt("overlays") {
		candidate := filepath.Join(overlay, "packages", repository)
		if fspath.DirExists(candidate) {
			paths = append(paths, candidate)
		}
	}

	return paths
}
