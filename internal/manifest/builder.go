// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"embed"
	"os"
	"path/filepath"

	"webdesk-cli/internal/config"
	"webdesk-cli/internal/discovery"
	"webdesk-cli/internal/issue"
	"webdesk-cli/pkg/fspath"

	"github.com/charmbracelet/log"
)

//go:embed templates/*.tpl
var builtinTemplates embed.FS

// Builder renders the generated output documents for one configuration
// snapshot.
type Builder struct {
	Tree     *config.Tree
	Runtime  config.Runtime
	Packages *discovery.PackageSet
	Themes   *discovery.ThemeSet
	Logger   *log.Logger
}

// New creates a Builder.
func New(tree *config.Tree, rt config.Runtime, packages *discovery.PackageSet, themes *discovery.ThemeSet, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	if packages == nil {
		packages = discovery.NewPackageSet()
	}
	if themes == nil {
		themes = &discovery.ThemeSet{}
	}
	return &Builder{Tree: tree, Runtime: rt, Packages: packages, Themes: themes, Logger: logger}
}

// template loads a named template: from the build.templates override
// directory when configured, from the embedded set otherwise. A configured
// override that does not provide the file is a NotFoundError; the embedded
// set is complete by construction.
func (b *Builder) template(name string) (string, error) {
	if dir := b.Tree.StringAt("build.templates", ""); dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", issue.NewErrorContext().
				WithKind(issue.KindNotFound).
				WithOperation("load output template").
				WithResource(filepath.Join(dir, name)).
				WithSuggestion("Remove the build.templates override to use the embedded templates").
				WithSuggestion("Run 'webdesk explain template-missing' for details").
				Wrap(err).
				BuildError()
		}
		return string(data), nil
	}

	data, err := builtinTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", issue.NewErrorContext().
			WithKind(issue.KindNotFound).
			WithOperation("load output template").
			WithResource(name).
			Wrap(err).
			BuildError()
	}
	return string(data), nil
}

// requireDir fails with a NotFoundError when an output directory is missing.
// Output directories are created by the build task, not by settings tasks.
func requireDir(dir string) error {
	if fspath.DirExists(dir) {
		return nil
	}
	return issue.NewErrorContext().
		WithKind(issue.KindNotFound).
		WithOperation("locate output directory").
		WithResource(dir).
		WithSuggestion("Run 'webdesk build' to create the distribution layout").
		WithSuggestion("Run 'webdesk explain output-dir' for details").
		BuildError()
}

// writeOutput writes a generated artifact. Plain os.WriteFile: writes are
// not atomic.
func (b *Builder) writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return issue.NewErrorContext().
			WithKind(issue.KindIO).
			WithOperation("write generated output").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	b.Logger.Info("wrote generated output", "path", path)
	return nil
}

// targetPlatform returns the platform whose path conventions generated
// artifacts should use.
func (b *Builder) targetPlatform() string {
	return b.Tree.StringAt("server.platform", fspath.Unix)
}
