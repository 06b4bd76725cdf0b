// SPDX-License-Identifier: MPL-2.0

// Package metadata reads and normalizes package descriptor files.
//
// Every installable package carries a metadata.json descriptor in its own
// directory. The descriptor's qualified name is derived from the directory
// layout ("<repository>/<name>"), its shape is validated against an embedded
// CUE schema, and the legacy sources list is upgraded into the structured
// preload form.
package metadata

import (
	"path/filepath"
	"strings"
)

// DescriptorName is the file name every discoverable package must carry.
const DescriptorName = "metadata.json"

// Package types recognized by the platform.
const (
	TypeApplication = "application"
	TypeExtension   = "extension"
	TypeService     = "service"
	TypeTheme       = "theme"
)

// AssetKind tags a preload asset by its role in the client.
type AssetKind string

const (
	AssetJavascript AssetKind = "javascript"
	AssetStylesheet AssetKind = "stylesheet"
	AssetHTML       AssetKind = "html"
	// AssetUnknown marks an asset whose kind could not be inferred from
	// its file extension. The client decides what to do with it.
	AssetUnknown AssetKind = ""
)

// PreloadAsset is one normalized entry of a descriptor's preload list.
type PreloadAsset struct {
	Path string    `json:"path"`
	Kind AssetKind `json:"kind,omitempty"`
}

// Metadata is one normalized package descriptor.
type Metadata struct {
	// Name is the short package name (its directory name).
	Name string `json:"name"`
	// Repository is the repository grouping the package was found under.
	Repository string `json:"repository"`
	// Type classifies the package.
	Type string `json:"type"`
	// Enabled is the descriptor's tri-state flag: nil means absent, which
	// defaults to enabled.
	Enabled *bool `json:"enabled,omitempty"`
	// Path is the package's source-relative path within its install
	// ("packages/<repository>/<name>" style).
	Path string `json:"path"`
	// Preload is the normalized asset list.
	Preload []PreloadAsset `json:"preload,omitempty"`
	// Autostart starts the package with every client session.
	Autostart bool `json:"autostart,omitempty"`
	// Main is the package entry point relative to its directory.
	Main string `json:"main,omitempty"`
	// Build carries free-form bundler options.
	Build map[string]any `json:"build,omitempty"`
	// Conf is an extension's server settings fragment.
	Conf map[string]any `json:"conf,omitempty"`

	// FilePath is where the descriptor was loaded from (not serialized).
	FilePath string `json:"-"`
}

// QualifiedName returns "<repository>/<name>", the package's unique key
// within a discovered set.
func (m *Metadata) QualifiedName() string {
	return m.Repository + "/" + m.Name
}

// IsEnabled reports the effective enabled state: an absent flag defaults to
// enabled.
func (m *Metadata) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// Dir returns the package directory (the descriptor's parent).
func (m *Metadata) Dir() string {
	return filepath.Dir(m.FilePath)
}

// inferKind derives an asset kind from a path's file extension. Anything
// unrecognized stays AssetUnknown.
func inferKind(path string) AssetKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs":
		return AssetJavascript
	case ".css":
		return AssetStylesheet
	case ".html":
		return AssetHTML
	default:
		return AssetUnknown
	}
}
