// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"webdesk-cli/internal/issue"
	"webdesk-cli/internal/manifest"
	"webdesk-cli/pkg/metadata"

	"golang.org/x/sync/errgroup"
)

// Built-in task names.
const (
	BuildDist      = "build:dist"
	BuildPackage   = "build:package"
	Manifest       = "manifest"
	SettingsClient = "settings:client"
	SettingsServer = "settings:server"
	ServerConf     = "serverconf"
	Test           = "test"
)

// Builtin returns a Registry with every built-in task registered.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(BuildDist, runBuildDist)
	r.Register(BuildPackage, runBuildPackage)
	r.Register(Manifest, runManifest)
	r.Register(SettingsClient, runSettingsClient)
	r.Register(SettingsServer, runSettingsServer)
	r.Register(ServerConf, runServerConf)
	r.Register(Test, runTest)
	return r
}

func builderFor(env *Env) *manifest.Builder {
	return manifest.New(env.Tree, env.Runtime, env.packages(), env.Themes, env.Logger)
}

// runBuildDist bundles the core distribution. It is the task that creates
// the output layout, so later tasks can insist on it existing.
func runBuildDist(ctx context.Context, env *Env) error {
	for _, dir := range []string{env.Runtime.DistDir(), env.Runtime.ServerDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return issue.NewErrorContext().
				WithKind(issue.KindIO).
				WithOperation("create output directory").
				WithResource(dir).
				Wrap(err).
				BuildError()
		}
	}
	return runBundler(ctx, env, BundlerOptions{
		Target:     "dist",
		SourceDir:  filepath.Join(env.Runtime.RootDir, "src"),
		OutputDir:  env.Runtime.DistDir(),
		Minimize:   env.Tree.BoolAt("build.minimize", false),
		Standalone: env.Runtime.Standalone,
	})
}

// runBuildPackage bundles the packages named in Env.Args, or every
// discovered package when no names are given. Builds fan out in parallel
// and the first failure aborts the batch.
func runBuildPackage(ctx context.Context, env *Env) error {
	targets, err := selectPackages(env)
	if err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, m := range targets {
		g.Go(func() error {
			return buildOnePackage(ctx, env, m)
		})
	}
	return g.Wait()
}

func buildOnePackage(ctx context.Context, env *Env, m *metadata.Metadata) error {
	outputDir := filepath.Join(env.Runtime.DistDir(), filepath.FromSlash(m.Path))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return issue.NewErrorContext().
			WithKind(issue.KindIO).
			WithOperation("create package output directory").
			WithResource(outputDir).
			Wrap(err).
			BuildError()
	}
	return runBundler(ctx, env, BundlerOptions{
		Target:     m.QualifiedName(),
		SourceDir:  m.Dir(),
		OutputDir:  outputDir,
		Minimize:   env.Tree.BoolAt("build.minimize", false),
		Standalone: env.Runtime.Standalone,
		Extra:      m.Build,
	})
}

// selectPackages maps Env.Args to discovered packages. Names match either
// the qualified "repo/name" form or the short name when exactly one
// repository carries it; an unknown or ambiguous name fails the whole
// batch before anything builds.
func selectPackages(env *Env) ([]*metadata.Metadata, error) {
	set := env.packages()
	if len(env.Args) == 0 {
		return set.All(), nil
	}
	targets := make([]*metadata.Metadata, 0, len(env.Args))
	for _, name := range env.Args {
		m, ok := set.Get(name)
		if !ok && !strings.Contains(name, "/") {
			var matches []*metadata.Metadata
			for _, candidate := range set.All() {
				if candidate.Name == name {
					matches = append(matches, candidate)
				}
			}
			if len(matches) > 1 {
				qualified := make([]string, len(matches))
				for i, candidate := range matches {
					qualified[i] = candidate.QualifiedName()
				}
				return nil, issue.NewErrorContext().
					WithKind(issue.KindValidation).
					WithOperation("select package").
					WithResource(name).
					WithSuggestion(fmt.Sprintf("the name is ambiguous, qualify it as one of %v", qualified)).
					BuildError()
			}
			if len(matches) == 1 {
				m, ok = matches[0], true
			}
		}
		if !ok {
			return nil, issue.NewErrorContext().
				WithKind(issue.KindNotFound).
				WithOperation("select package").
				WithResource(name).
				WithSuggestion("run 'webdesk package list' to see discovered packages").
				BuildError()
		}
		targets = append(targets, m)
	}
	return targets, nil
}

func runManifest(_ context.Context, env *Env) error {
	return builderFor(env).PackageManifest()
}

func runSettingsClient(_ context.Context, env *Env) error {
	return builderFor(env).ClientSettings()
}

func runSettingsServer(_ context.Context, env *Env) error {
	return builderFor(env).ServerSettings()
}

func runServerConf(_ context.Context, env *Env) error {
	return builderFor(env).ServerConf()
}

// runTest shells out to the configured lint engine and test runner, in
// that order. A lint failure stops the run before tests start.
func runTest(ctx context.Context, env *Env) error {
	commands := []string{
		env.Tree.StringAt("build.lint", "eslint ."),
		env.Tree.StringAt("build.test", "mocha"),
	}
	for _, command := range commands {
		if command == "" {
			continue
		}
		if err := runShell(ctx, env, command); err != nil {
			return err
		}
	}
	return nil
}
