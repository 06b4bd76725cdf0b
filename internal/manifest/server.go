// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"webdesk-cli/internal/config"
	"webdesk-cli/pkg/fspath"
	"webdesk-cli/pkg/metadata"
)

// Generated server-side document names.
const (
	ServerSettingsFile  = "settings.json"
	PackageManifestFile = "packages.json"
)

// ServerSettings renders the server settings document: the tree's server
// section with every extension-typed package's conf fragment folded in, in
// discovery order. A later-discovered extension wins on key collision.
func (b *Builder) ServerSettings() error {
	if err := requireDir(b.Runtime.ServerDir()); err != nil {
		return err
	}

	payload := b.Tree.MapAt("server")
	for _, ext := range b.Packages.ByType(metadata.TypeExtension) {
		if len(ext.Conf) == 0 {
			continue
		}
		config.MergeDeep(payload, ext.Conf)
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode server settings: %w", err)
	}

	return b.writeOutput(filepath.Join(b.Runtime.ServerDir(), ServerSettingsFile), encoded)
}

// manifestEntry is one package's manifest shape: the normalized metadata
// with the build options and enabled flag stripped, which are build-time
// concerns the server has no use for.
type manifestEntry struct {
	Name       string                  `json:"name"`
	Repository string                  `json:"repository"`
	Type       string                  `json:"type"`
	Path       string                  `json:"path"`
	Main       string                  `json:"main,omitempty"`
	Preload    []metadata.PreloadAsset `json:"preload,omitempty"`
	Autostart  bool                    `json:"autostart,omitempty"`
	Singular   bool                    `json:"singular,omitempty"`
}

// PackageManifest renders the server package manifest: every discovered
// package keyed by qualified name, with service-typed packages marked
// singular and paths written in the target platform's convention.
func (b *Builder) PackageManifest() error {
	if err := requireDir(b.Runtime.ServerDir()); err != nil {
		return err
	}

	platform := b.targetPlatform()

	entries := make(map[string]manifestEntry, b.Packages.Len())
	for _, m := range b.Packages.All() {
		entries[m.QualifiedName()] = manifestEntry{
			Name:       m.Name,
			Repository: m.Repository,
			Type:       m.Type,
			Path:       fspath.ForPlatform(m.Path, platform),
			Main:       m.Main,
			Preload:    m.Preload,
			Autostart:  m.Autostart,
			Singular:   m.Type == metadata.TypeService,
		}
	}

	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode package manifest: %w", err)
	}

	return b.writeOutput(filepath.Join(b.Runtime.ServerDir(), PackageManifestFile), encoded)
}
