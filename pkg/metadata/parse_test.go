// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"webdesk-cli/internal/issue"
)

// writeDescriptor lays out <base>/<repo>/<name>/metadata.json and returns
// the descriptor path.
func writeDescriptor(t *testing.T, base, repo, name, content string) string {
	t.Helper()
	dir := filepath.Join(base, repo, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, DescriptorName)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestReadDerivesNamesFromLayout(t *testing.T) {
	t.Parallel()

	file := writeDescriptor(t, t.TempDir(), "default", "calculator", `{
		"type": "application",
		"main": "main.js"
	}`)

	m, err := Read(file, "")
	if err != nil {
		t.Fatal(err)
	}

	if m.Name != "calculator" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Repository != "default" {
		t.Errorf("Repository = %q", m.Repository)
	}
	if m.QualifiedName() != "default/calculator" {
		t.Errorf("QualifiedName = %q", m.QualifiedName())
	}
	if m.Path != filepath.Join("packages", "default", "calculator") {
		t.Errorf("Path = %q", m.Path)
	}
	if !m.IsEnabled() {
		t.Error("absent enabled flag must default to enabled")
	}
}

func TestReadRepositoryHintOverridesLayout(t *testing.T) {
	t.Parallel()

	file := writeDescriptor(t, t.TempDir(), "whatever", "clock", `{"type": "application"}`)

	m, err := Read(file, "extras")
	if err != nil {
		t.Fatal(err)
	}

	if m.Repository != "extras" {
		t.Errorf("Repository = %q, want hint to win", m.Repository)
	}
	if m.QualifiedName() != "extras/clock" {
		t.Errorf("QualifiedName = %q", m.QualifiedName())
	}
}

func TestReadNormalizesPreload(t *testing.T) {
	t.Parallel()

	file := writeDescriptor(t, t.TempDir(), "default", "editor", `{
		"type": "application",
		"preload": [
			"vendor/ace.js",
			"style.css",
			"window.html",
			"LICENSE",
			{"path": "worker.js", "kind": "javascript"},
			{"path": "oddball.bin"}
		],
		"sources": ["legacy.js", "legacy.css"]
	}`)

	m, err := Read(file, "")
	if err != nil {
		t.Fatal(err)
	}

	want := []PreloadAsset{
		{Path: "vendor/ace.js", Kind: AssetJavascript},
		{Path: "style.css", Kind: AssetStylesheet},
		{Path: "window.html", Kind: AssetHTML},
		{Path: "LICENSE", Kind: AssetUnknown},
		{Path: "worker.js", Kind: AssetJavascript},
		{Path: "oddball.bin", Kind: AssetUnknown},
		{Path: "legacy.js", Kind: AssetJavascript},
		{Path: "legacy.css", Kind: AssetStylesheet},
	}

	if len(m.Preload) != len(want) {
		t.Fatalf("Preload has %d entries, want %d: %v", len(m.Preload), len(want), m.Preload)
	}
	for i, asset := range want {
		if m.Preload[i] != asset {
			t.Errorf("Preload[%d] = %v, want %v", i, m.Preload[i], asset)
		}
	}
}

func TestReadTriStateEnabled(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	tests := []struct {
		name    string
		content string
		enabled bool
		set     bool
	}{
		{"absent defaults enabled", `{"type":"application"}`, true, false},
		{"explicit true", `{"type":"application","enabled":true}`, true, true},
		{"explicit false", `{"type":"application","enabled":false}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeDescriptor(t, base, "default", "pkg-"+tt.name[:6], tt.content)
			m, err := Read(file, "")
			if err != nil {
				t.Fatal(err)
			}
			if m.IsEnabled() != tt.enabled {
				t.Errorf("IsEnabled = %v, want %v", m.IsEnabled(), tt.enabled)
			}
			if (m.Enabled != nil) != tt.set {
				t.Errorf("Enabled set = %v, want %v", m.Enabled != nil, tt.set)
			}
		})
	}
}

func TestReadRejectsUnknownType(t *testing.T) {
	t.Parallel()

	file := writeDescriptor(t, t.TempDir(), "default", "bad", `{"type":"widget"}`)

	_, err := Read(file, "")
	if err == nil {
		t.Fatal("expected schema validation failure for unknown type")
	}
	if issue.KindOf(err) != issue.KindParse {
		t.Errorf("kind = %v, want KindParse", issue.KindOf(err))
	}
}

func TestReadAcceptsComments(t *testing.T) {
	t.Parallel()

	file := writeDescriptor(t, t.TempDir(), "default", "commented", `{
		// started with every session
		"type": "service",
		"autostart": true
	}`)

	m, err := Read(file, "")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Autostart {
		t.Error("expected autostart from commented descriptor")
	}
}

func TestReadMissingFileIsIOError(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "nope", DescriptorName), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if issue.KindOf(err) != issue.KindIO {
		t.Errorf("kind = %v, want KindIO", issue.KindOf(err))
	}
}

func TestReadExtensionConf(t *testing.T) {
	t.Parallel()

	file := writeDescriptor(t, t.TempDir(), "default", "broadway", `{
		"type": "extension",
		"conf": {"broadway": {"enabled": true, "port": 8892}}
	}`)

	m, err := Read(file, "")
	if err != nil {
		t.Fatal(err)
	}

	section, ok := m.Conf["broadway"].(map[string]any)
	if !ok {
		t.Fatalf("Conf = %v", m.Conf)
	}
	if section["port"] != 8892.0 {
		t.Errorf("port = %v", section["port"])
	}
}
