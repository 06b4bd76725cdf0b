// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"testing"
)

func sampleTree() *Tree {
	return NewTree(map[string]any{
		"client": map[string]any{
			"theme":      "default",
			"animations": true,
		},
		"repositories": []any{"default", "extras"},
		"server": map[string]any{
			"port": 8000.0,
		},
	})
}

func TestTreeGet(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	if v, ok := tree.Get("server.port"); !ok || v != 8000.0 {
		t.Errorf("Get(server.port) = %v, %v", v, ok)
	}
	if _, ok := tree.Get("server.missing"); ok {
		t.Error("expected miss for absent path")
	}
}

func TestTreeAccessors(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	if got := tree.StringAt("client.theme", "fallback"); got != "default" {
		t.Errorf("StringAt = %q", got)
	}
	if got := tree.StringAt("client.missing", "fallback"); got != "fallback" {
		t.Errorf("StringAt fallback = %q", got)
	}
	if !tree.BoolAt("client.animations", false) {
		t.Error("BoolAt = false, want true")
	}
	if got := tree.StringsAt("repositories"); !reflect.DeepEqual(got, []string{"default", "extras"}) {
		t.Errorf("StringsAt = %v", got)
	}
	if got := tree.MapAt("nope"); len(got) != 0 {
		t.Errorf("MapAt(absent) = %v, want empty", got)
	}
}

func TestTreeIsFrozen(t *testing.T) {
	t.Parallel()

	input := map[string]any{"client": map[string]any{"theme": "default"}}
	tree := NewTree(input)

	// Mutating the construction input must not leak in.
	input["client"].(map[string]any)["theme"] = "mutated"
	if got := tree.StringAt("client.theme", ""); got != "default" {
		t.Errorf("tree observed input mutation: %q", got)
	}

	// Mutating an accessor result must not leak back.
	section := tree.MapAt("client")
	section["theme"] = "mutated"
	if got := tree.StringAt("client.theme", ""); got != "default" {
		t.Errorf("tree observed accessor mutation: %q", got)
	}
}
