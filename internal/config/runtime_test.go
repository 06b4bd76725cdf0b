// SPDX-License-Identifier: MPL-2.0

package config

import (
	"path/filepath"
	"testing"
)

func TestLoadRuntimeDefaultsToWorkingDirectory(t *testing.T) {
	v := NewRuntimeViper()

	rt, err := LoadRuntime(v)
	if err != nil {
		t.Fatal(err)
	}

	if !filepath.IsAbs(rt.RootDir) {
		t.Errorf("RootDir must be absolute, got %q", rt.RootDir)
	}
	if rt.Debug || rt.Standalone {
		t.Error("debug and standalone must default to false")
	}
}

func TestLoadRuntimeFromEnvironment(t *testing.T) {
	root := t.TempDir()
	t.Setenv("WEBDESK_ROOT", root)
	t.Setenv("WEBDESK_DEBUG", "true")
	t.Setenv("WEBDESK_STANDALONE", "true")

	rt, err := LoadRuntime(NewRuntimeViper())
	if err != nil {
		t.Fatal(err)
	}

	if rt.RootDir != root {
		t.Errorf("RootDir = %q, want %q", rt.RootDir, root)
	}
	if !rt.Debug {
		t.Error("expected Debug from WEBDESK_DEBUG")
	}
	if !rt.Standalone {
		t.Error("expected Standalone from WEBDESK_STANDALONE")
	}
}

func TestRuntimeDerivedPaths(t *testing.T) {
	t.Parallel()

	rt := Runtime{RootDir: "/srv/app"}

	if got := rt.ConfigDir(); got != filepath.Join("/srv/app", "config") {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := rt.DistDir(); got != filepath.Join("/srv/app", "dist") {
		t.Errorf("DistDir = %q", got)
	}
	if got := rt.ServerDir(); got != filepath.Join("/srv/app", "server") {
		t.Errorf("ServerDir = %q", got)
	}
	if got := rt.PackagesDir("default"); got != filepath.Join("/srv/app", "packages", "default") {
		t.Errorf("PackagesDir = %q", got)
	}
}
