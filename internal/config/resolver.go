// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"webdesk-cli/internal/issue"
)

// EnvLookup abstracts environment access for the resolver so tests can
// supply a fixed environment. os.LookupEnv satisfies it.
type EnvLookup func(name string) (string, bool)

// tokenPattern matches a %TOKEN% placeholder. Token names are dot-paths:
// letters, digits, underscores and dots.
var tokenPattern = regexp.MustCompile(`%([A-Za-z0-9_.]+)%`)

// reservedTokens are exempt from build-time resolution. They are consumed by
// the platform server at request time (session identity interpolation) and
// must survive into the generated artifacts verbatim.
var reservedTokens = map[string]bool{
	"SESSION":  true,
	"USERNAME": true,
	"UID":      true,
}

// upperPattern recognizes tokens eligible for environment lookup.
var upperPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Resolve performs one placeholder-substitution pass over root and returns
// the re-parsed result; root itself is not modified.
//
// The tree is serialized to JSON, each distinct %TOKEN% is collected in
// first-seen order, and every occurrence of a token's literal text is
// replaced by its resolved value. Resolution order per token: reserved
// tokens are skipped; locals (overlay-scoped bindings) win next; an
// all-uppercase token then tries the process environment; anything left is
// looked up in the tree itself as a dot-path, defaulting to the empty
// string. Replacement values are JSON-escaped before splicing.
//
// Substitution is textual and the document is re-parsed only once, so a
// token whose resolved value itself contains another %TOKEN% is not
// recursively resolved. That is accepted behavior, not an oversight.
func Resolve(root map[string]any, env EnvLookup, locals map[string]string) (map[string]any, error) {
	serialized, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("serialize configuration tree: %w", err)
	}

	text := string(serialized)
	for _, name := range distinctTokens(text) {
		if reservedTokens[name] {
			continue
		}

		value, bound := locals[name]
		if !bound && env != nil && upperPattern.MatchString(name) {
			value, bound = env(name)
		}
		if !bound {
			if found, ok := lookupPath(root, name); ok {
				value = flattenString(found)
			}
		}

		text = strings.ReplaceAll(text, "%"+name+"%", jsonEscape(value))
	}

	var resolved map[string]any
	if err := json.Unmarshal([]byte(text), &resolved); err != nil {
		return nil, issue.NewErrorContext().
			WithKind(issue.KindParse).
			WithOperation("resolve configuration placeholders").
			WithSuggestion("Check that no configuration value substitutes to malformed text").
			Wrap(err).
			BuildError()
	}
	return resolved, nil
}

// distinctTokens returns the token names appearing in text, deduplicated,
// in order of first occurrence.
func distinctTokens(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range tokenPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// jsonEscape renders value with JSON string escaping but without the
// surrounding quotes, suitable for splicing into a serialized document.
func jsonEscape(value string) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return value
	}
	return string(encoded[1 : len(encoded)-1])
}
