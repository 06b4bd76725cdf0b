// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"webdesk-cli/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/tidwall/jsonc"
)

// OverlayLocal is the token name bound to an overlay's own root directory
// while that overlay's fragments are resolved. An overlay fragment can
// therefore reference its own location as %OVERLAY% before it is merged
// into a tree where a later overlay may shadow the same keys.
const OverlayLocal = "OVERLAY"

// Reader assembles one configuration snapshot per Read call.
type Reader struct {
	// BaseDir is the base configuration directory holding the primary
	// JSON fragments.
	BaseDir string
	// Env supplies environment lookups for placeholder resolution.
	// Defaults to os.LookupEnv.
	Env EnvLookup
	// Logger receives warnings about skipped fragments. Defaults to the
	// package-level standard logger.
	Logger *log.Logger
}

// Read loads and merges all fragments, applies the two-phase placeholder
// resolution (per-overlay, then global) and returns the frozen tree.
//
// An unreadable base directory is fatal. A malformed fragment is logged at
// warn level and skipped; its keys simply never reach the merged tree.
func (r *Reader) Read(ctx context.Context) (*Tree, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read configuration tree canceled: %w", ctx.Err())
	default:
	}

	env := r.Env
	if env == nil {
		env = os.LookupEnv
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	merged, err := r.mergeDir(r.BaseDir, make(map[string]any), logger, true)
	if err != nil {
		return nil, err
	}

	for _, overlayDir := range overlayDirs(merged) {
		// An overlay mirrors the root layout: fragments under config/,
		// installable packages under packages/.
		fragments, err := r.mergeDir(filepath.Join(overlayDir, "config"), make(map[string]any), logger, false)
		if err != nil {
			return nil, err
		}
		if fragments == nil {
			continue
		}

		// Overlay-local resolution pass, scoped before the merge so the
		// overlay's own path bindings resolve against its fragment set
		// rather than the final tree.
		resolved, err := Resolve(fragments, env, map[string]string{OverlayLocal: overlayDir})
		if err != nil {
			return nil, err
		}
		MergeDeep(merged, resolved)
	}

	final, err := Resolve(merged, env, nil)
	if err != nil {
		return nil, err
	}

	return NewTree(final), nil
}

// mergeDir merges every *.json fragment in dir into acc, in lexicographic
// filename order. When required is false a missing directory yields a nil
// map and no error (overlays may declare packages but no configuration).
func (r *Reader) mergeDir(dir string, acc map[string]any, logger *log.Logger, required bool) (map[string]any, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !required && os.IsNotExist(err) {
			logger.Warn("overlay has no configuration directory", "dir", dir)
			return nil, nil
		}
		return nil, issue.NewErrorContext().
			WithKind(issue.KindIO).
			WithOperation("read configuration directory").
			WithResource(dir).
			WithSuggestion("Check that the root path points at a platform installation").
			Wrap(err).
			BuildError()
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	// os.ReadDir returns sorted entries already; sorting again keeps the
	// lexicographic precedence an explicit part of the contract.
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithKind(issue.KindIO).
				WithOperation("read configuration fragment").
				WithResource(path).
				Wrap(err).
				BuildError()
		}

		var fragment map[string]any
		if err := json.Unmarshal(jsonc.ToJSON(data), &fragment); err != nil {
			logger.Warn("skipping malformed configuration fragment",
				"fragment", path, "err", err)
			continue
		}
		MergeDeep(acc, fragment)
	}

	return acc, nil
}

// overlayDirs extracts the overlay directory list from the merged base tree.
func overlayDirs(merged map[string]any) []string {
	value, ok := merged["overlays"]
	if !ok {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	var dirs []string
	for _, elem := range list {
		if s, ok := elem.(string); ok {
			dirs = append(dirs, s)
		}
	}
	return dirs
}
