// SPDX-License-Identifier: MPL-2.0

package task

import (
	"io"
	"os"

	"webdesk-cli/internal/config"
	"webdesk-cli/internal/discovery"

	"github.com/charmbracelet/log"
)

// Env carries everything a task needs to run: the resolved configuration
// tree, runtime paths, the discovered package and theme sets, and the
// destinations for subprocess output.
type Env struct {
	Tree     *config.Tree
	Runtime  config.Runtime
	Packages *discovery.PackageSet
	Themes   *discovery.ThemeSet
	Logger   *log.Logger

	// Args holds positional task arguments, e.g. the package names for a
	// scoped package build. Empty means "everything".
	Args []string

	Stdout io.Writer
	Stderr io.Writer
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

func (e *Env) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e *Env) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}

func (e *Env) packages() *discovery.PackageSet {
	if e.Packages == nil {
		return discovery.NewPackageSet()
	}
	return e.Packages
}
