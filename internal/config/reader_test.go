// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webdesk-cli/internal/issue"

	"github.com/charmbracelet/log"
)

// writeFragments populates dir with the given name → content fragments.
func writeFragments(t *testing.T, dir string, fragments map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range fragments {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func testLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestReadMergesInFilenameOrder(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeFragments(t, base, map[string]string{
		"10-first.json":  `{"a":1}`,
		"20-second.json": `{"a":2,"b":3}`,
	})

	r := &Reader{BaseDir: base, Env: envOf(nil)}
	tree, err := r.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := tree.Get("a"); v != 2.0 {
		t.Errorf("a = %v, want 2 (later fragment wins)", v)
	}
	if v, _ := tree.Get("b"); v != 3.0 {
		t.Errorf("b = %v, want 3", v)
	}
}

func TestReadScalarPrecedenceByFilenameSort(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	// Written in "reverse" order to prove precedence comes from the sorted
	// names, not write order.
	writeFragments(t, base, map[string]string{
		"90-late.json":  `{"port":9090}`,
		"10-early.json": `{"port":8000}`,
	})

	r := &Reader{BaseDir: base, Env: envOf(nil)}
	tree, err := r.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := tree.Get("port"); v != 9090.0 {
		t.Errorf("port = %v, want 9090", v)
	}
}

func TestReadSkipsMalformedFragmentWithWarning(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeFragments(t, base, map[string]string{
		"10-good.json":   `{"kept":true}`,
		"20-broken.json": `{"kept":fa`,
		"30-more.json":   `{"also":"here"}`,
	})

	var buf bytes.Buffer
	r := &Reader{BaseDir: base, Env: envOf(nil), Logger: testLogger(&buf)}
	tree, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("malformed fragment must not abort the read: %v", err)
	}

	if !tree.BoolAt("kept", false) {
		t.Error("fragments before the malformed one must merge")
	}
	if tree.StringAt("also", "") != "here" {
		t.Error("fragments after the malformed one must merge")
	}
	if !strings.Contains(buf.String(), "20-broken.json") {
		t.Errorf("expected a warning naming the fragment, log: %s", buf.String())
	}
}

func TestReadAcceptsCommentedFragments(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeFragments(t, base, map[string]string{
		"10-base.json": "{\n\t// primary listener\n\t\"port\": 8000\n}",
	})

	r := &Reader{BaseDir: base, Env: envOf(nil)}
	tree, err := r.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := tree.Get("port"); v != 8000.0 {
		t.Errorf("port = %v, want 8000", v)
	}
}

func TestReadMissingBaseDirIsIOError(t *testing.T) {
	t.Parallel()

	r := &Reader{BaseDir: filepath.Join(t.TempDir(), "missing"), Env: envOf(nil)}
	_, err := r.Read(context.Background())
	if err == nil {
		t.Fatal("expected error for unreadable base directory")
	}
	if issue.KindOf(err) != issue.KindIO {
		t.Errorf("kind = %v, want KindIO", issue.KindOf(err))
	}
}

func TestReadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Reader{BaseDir: t.TempDir(), Env: envOf(nil)}
	if _, err := r.Read(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestReadOverlayShadowsBase(t *testing.T) {
	t.Parallel()

	overlay := t.TempDir()
	writeFragments(t, filepath.Join(overlay, "config"), map[string]string{
		"10-theme.json": `{"client":{"theme":"midnight"}}`,
	})

	base := t.TempDir()
	writeFragments(t, base, map[string]string{
		"10-base.json":     `{"client":{"theme":"default","animations":true}}`,
		"20-overlays.json": `{"overlays":["` + overlay + `"]}`,
	})

	r := &Reader{BaseDir: base, Env: envOf(nil)}
	tree, err := r.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got := tree.StringAt("client.theme", ""); got != "midnight" {
		t.Errorf("client.theme = %q, want midnight (overlay wins)", got)
	}
	if !tree.BoolAt("client.animations", false) {
		t.Error("base keys the overlay is silent on must survive")
	}
}

func TestReadOverlayResolvesOwnRootBeforeMerge(t *testing.T) {
	t.Parallel()

	overlay := t.TempDir()
	writeFragments(t, filepath.Join(overlay, "config"), map[string]string{
		"10-assets.json": `{"client":{"wallpaper":"%OVERLAY%/assets/bg.png"}}`,
	})

	base := t.TempDir()
	writeFragments(t, base, map[string]string{
		"10-overlays.json": `{"overlays":["` + overlay + `"]}`,
	})

	r := &Reader{BaseDir: base, Env: envOf(nil)}
	tree, err := r.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := overlay + "/assets/bg.png"
	if got := tree.StringAt("client.wallpaper", ""); got != want {
		t.Errorf("client.wallpaper = %q, want %q", got, want)
	}
}

func TestReadOverlayWithoutConfigDirIsSkipped(t *testing.T) {
	t.Parallel()

	overlay := t.TempDir() // no config/ subdirectory

	base := t.TempDir()
	writeFragments(t, base, map[string]string{
		"10-base.json":     `{"a":1}`,
		"20-overlays.json": `{"overlays":["` + overlay + `"]}`,
	})

	var buf bytes.Buffer
	r := &Reader{BaseDir: base, Env: envOf(nil), Logger: testLogger(&buf)}
	tree, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("overlay without configuration must not abort: %v", err)
	}

	if v, _ := tree.Get("a"); v != 1.0 {
		t.Errorf("a = %v, want 1", v)
	}
}

func TestReadGlobalResolutionPass(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeFragments(t, base, map[string]string{
		"10-base.json": `{"dist":"%ROOT%/dist","server":{"hostname":"localhost"}}`,
	})

	r := &Reader{BaseDir: base, Env: envOf(map[string]string{"ROOT": "/srv/app"})}
	tree, err := r.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got := tree.StringAt("dist", ""); got != "/srv/app/dist" {
		t.Errorf("dist = %q, want /srv/app/dist", got)
	}
}
