// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Runtime carries the tool's own process-wide settings, resolved exactly
// once at startup and threaded down through function parameters. Leaf code
// never reads the environment for these values.
type Runtime struct {
	// RootDir is the platform installation root (WEBDESK_ROOT / --root,
	// defaulting to the working directory).
	RootDir string
	// Debug enables verbose diagnostics (WEBDESK_DEBUG / --verbose).
	Debug bool
	// Standalone selects the single-user build profile
	// (WEBDESK_STANDALONE / --standalone).
	Standalone bool
}

// NewRuntimeViper returns a viper instance with the WEBDESK_* environment
// bindings and defaults in place. The CLI layer binds its flags onto it
// before calling LoadRuntime.
func NewRuntimeViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("WEBDESK")
	v.AutomaticEnv()
	v.SetDefault("root", "")
	v.SetDefault("debug", false)
	v.SetDefault("standalone", false)
	return v
}

// LoadRuntime materializes the Runtime from v, resolving the root directory
// to an absolute path. An empty root falls back to the working directory.
func LoadRuntime(v *viper.Viper) (Runtime, error) {
	root := v.GetString("root")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Runtime{}, fmt.Errorf("determine working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Runtime{}, fmt.Errorf("resolve root directory: %w", err)
	}

	return Runtime{
		RootDir:    abs,
		Debug:      v.GetBool("debug"),
		Standalone: v.GetBool("standalone"),
	}, nil
}

// ConfigDir returns the base configuration fragment directory.
func (r Runtime) ConfigDir() string {
	return filepath.Join(r.RootDir, "config")
}

// DistDir returns the client distribution output directory.
func (r Runtime) DistDir() string {
	return filepath.Join(r.RootDir, "dist")
}

// ServerDir returns the server-side settings output directory.
func (r Runtime) ServerDir() string {
	return filepath.Join(r.RootDir, "server")
}

// PackagesDir returns the primary package search path for a repository.
func (r Runtime) PackagesDir(repository string) string {
	return filepath.Join(r.RootDir, "packages", repository)
}
