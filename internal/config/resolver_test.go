// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"testing"
)

// envOf builds an EnvLookup over a fixed map.
func envOf(vars map[string]string) EnvLookup {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestResolveEnvironmentToken(t *testing.T) {
	t.Parallel()

	root := map[string]any{"path": "%ROOT%/x"}
	env := envOf(map[string]string{"ROOT": "/srv/app"})

	got, err := Resolve(root, env, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got["path"] != "/srv/app/x" {
		t.Errorf("path = %v, want /srv/app/x", got["path"])
	}

	// The input tree is not modified.
	if root["path"] != "%ROOT%/x" {
		t.Error("Resolve must not mutate its input")
	}
}

func TestResolveTreeLookupForLowercaseToken(t *testing.T) {
	t.Parallel()

	root := map[string]any{
		"server": map[string]any{"hostname": "desk.example.org"},
		"client": map[string]any{"title": "webdesk @ %server.hostname%"},
	}

	got, err := Resolve(root, envOf(nil), nil)
	if err != nil {
		t.Fatal(err)
	}

	client := got["client"].(map[string]any)
	if client["title"] != "webdesk @ desk.example.org" {
		t.Errorf("title = %v", client["title"])
	}
}

func TestResolveUppercaseFallsBackToTree(t *testing.T) {
	t.Parallel()

	// DIST is all-uppercase but unset in the environment, so the tree
	// lookup applies.
	root := map[string]any{
		"DIST":   "/srv/app/dist",
		"target": "%DIST%/settings.js",
	}

	got, err := Resolve(root, envOf(nil), nil)
	if err != nil {
		t.Fatal(err)
	}

	if got["target"] != "/srv/app/dist/settings.js" {
		t.Errorf("target = %v", got["target"])
	}
}

func TestResolveEnvironmentWinsOverTree(t *testing.T) {
	t.Parallel()

	root := map[string]any{
		"ROOT": "/from/tree",
		"path": "%ROOT%",
	}

	got, err := Resolve(root, envOf(map[string]string{"ROOT": "/from/env"}), nil)
	if err != nil {
		t.Fatal(err)
	}

	if got["path"] != "/from/env" {
		t.Errorf("path = %v, want /from/env", got["path"])
	}
}

func TestResolveUnknownTokenBecomesEmpty(t *testing.T) {
	t.Parallel()

	root := map[string]any{"value": "[%nosuch.key%]"}

	got, err := Resolve(root, envOf(nil), nil)
	if err != nil {
		t.Fatal(err)
	}

	if got["value"] != "[]" {
		t.Errorf("value = %v, want []", got["value"])
	}
}

func TestResolveReservedTokensSurvive(t *testing.T) {
	t.Parallel()

	root := map[string]any{
		"home": "/home/%USERNAME%",
		"tmp":  "/tmp/%SESSION%-%UID%",
	}

	got, err := Resolve(root, envOf(map[string]string{
		"USERNAME": "build-agent",
		"SESSION":  "nope",
		"UID":      "1000",
	}), nil)
	if err != nil {
		t.Fatal(err)
	}

	if got["home"] != "/home/%USERNAME%" {
		t.Errorf("reserved token resolved: %v", got["home"])
	}
	if got["tmp"] != "/tmp/%SESSION%-%UID%" {
		t.Errorf("reserved tokens resolved: %v", got["tmp"])
	}
}

func TestResolveLocalsWinOverEnvironment(t *testing.T) {
	t.Parallel()

	root := map[string]any{"assets": "%OVERLAY%/assets"}

	got, err := Resolve(root,
		envOf(map[string]string{"OVERLAY": "/wrong"}),
		map[string]string{"OVERLAY": "/mnt/extra"})
	if err != nil {
		t.Fatal(err)
	}

	if got["assets"] != "/mnt/extra/assets" {
		t.Errorf("assets = %v", got["assets"])
	}
}

func TestResolveIdempotentWithoutSelfReference(t *testing.T) {
	t.Parallel()

	root := map[string]any{
		"server": map[string]any{"hostname": "localhost"},
		"url":    "http://%server.hostname%:%PORT%/",
	}
	env := envOf(map[string]string{"PORT": "8000"})

	once, err := Resolve(root, env, nil)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Resolve(once, env, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("resolution not idempotent: %v vs %v", once, twice)
	}
}

func TestResolveDoesNotRecurseIntoSubstitutedValues(t *testing.T) {
	t.Parallel()

	// A substituted value containing another token pattern is left as-is:
	// the pass is textual with a single re-parse at the end.
	root := map[string]any{"value": "%INDIRECT%"}
	env := envOf(map[string]string{
		"INDIRECT": "%OTHER%",
		"OTHER":    "should never appear",
	})

	got, err := Resolve(root, env, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got["value"] != "%OTHER%" {
		t.Errorf("value = %v, want literal %%OTHER%%", got["value"])
	}
}

func TestResolveEscapesSubstitutedValues(t *testing.T) {
	t.Parallel()

	// A value with characters that are meaningful in JSON must not corrupt
	// the document.
	root := map[string]any{"motd": "%MOTD%"}
	env := envOf(map[string]string{"MOTD": "line one\nsaid \"hi\" \\ done"})

	got, err := Resolve(root, env, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got["motd"] != "line one\nsaid \"hi\" \\ done" {
		t.Errorf("motd = %q", got["motd"])
	}
}

func TestDistinctTokensFirstSeenOrder(t *testing.T) {
	t.Parallel()

	text := `{"a":"%B%","b":"%A%","c":"%B%/%C%"}`
	got := distinctTokens(text)
	want := []string{"B", "A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("distinctTokens = %v, want %v", got, want)
	}
}
