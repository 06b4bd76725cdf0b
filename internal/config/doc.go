// SPDX-License-Identifier: MPL-2.0

// Package config assembles the platform configuration tree.
//
// The tree is built fresh on every invocation by deep-merging all JSON
// fragments from the base configuration directory and each configured
// overlay directory, then resolving %TOKEN% placeholders. Merge precedence
// is explicit: fragments merge in lexicographic filename order within a
// directory, and overlays merge after (and therefore over) the base set, in
// the order the base tree lists them.
//
// The package also carries the tool's own runtime settings (root directory,
// debug and standalone flags), resolved once at process start from flags and
// WEBDESK_* environment variables.
package config
