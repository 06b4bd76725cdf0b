// SPDX-License-Identifier: EPL-2.0

package task

import (
	"context"
	"errors"
	"strings"
	"testing"

	"webdesk-cli/internal/config"
	"webdesk-cli/internal/issue"
)

func testEnv(tree map[string]any, root string) *Env {
	return &Env{
		Tree:    config.NewTree(tree),
		Runtime: config.Runtime{RootDir: root},
	}
}

func TestRegistryRunDispatches(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ran := false
	r.Register("noop", func(context.Context, *Env) error {
		ran = true
		return nil
	})

	if err := r.Run(context.Background(), "noop", testEnv(nil, t.TempDir())); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Fatal("registered task did not run")
	}
}

func TestRegistryRunUnknownTask(t *testing.T) {
	t.Parallel()

	err := NewRegistry().Run(context.Background(), "nope", testEnv(nil, t.TempDir()))
	if issue.KindOf(err) != issue.KindNotFound {
		t.Fatalf("kind = %v, want KindNotFound", issue.KindOf(err))
	}
}

func TestRegistryRunWrapsFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := NewRegistry()
	r.Register("fail", func(context.Context, *Env) error { return boom })

	err := r.Run(context.Background(), "fail", testEnv(nil, t.TempDir()))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "task fail") {
		t.Fatalf("err = %q, want task name in message", err)
	}
}

func TestRegistryNamesKeepRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		r.Register(name, func(context.Context, *Env) error { return nil })
	}
	// Re-registering must not duplicate the entry.
	r.Register("a", func(context.Context, *Env) error { return nil })

	got := r.Names()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
}

func TestBuiltinRegistersAllTasks(t *testing.T) {
	t.Parallel()

	names := Builtin().Names()
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{BuildDist, BuildPackage, Manifest, SettingsClient, SettingsServer, ServerConf, Test} {
		if !seen[want] {
			t.Fatalf("built-in registry is missing %q (have %v)", want, names)
		}
	}
}
