// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"webdesk-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/tidwall/jsonc"
)

//go:embed metadata_schema.cue
var metadataSchema string

// rawDescriptor mirrors the on-disk descriptor shape before normalization.
// Preload entries stay untyped because the legacy format mixes bare strings
// with structured objects in one list.
type rawDescriptor struct {
	Type      string         `json:"type"`
	Enabled   *bool          `json:"enabled"`
	Autostart bool           `json:"autostart"`
	Main      string         `json:"main"`
	Preload   []any          `json:"preload"`
	Sources   []string       `json:"sources"`
	Build     map[string]any `json:"build"`
	Conf      map[string]any `json:"conf"`
}

// Read loads one descriptor file. The qualified name is derived from the
// directory layout: the descriptor's parent directory is the package name
// and the grandparent directory is the repository, unless repoHint supplies
// the repository explicitly (overlay package paths are not laid out under a
// repository directory).
func Read(file, repoHint string) (*Metadata, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithKind(issue.KindIO).
			WithOperation("read package descriptor").
			WithResource(file).
			Wrap(err).
			BuildError()
	}

	return ParseBytes(data, file, repoHint)
}

// ParseBytes parses and normalizes descriptor content. The path is used for
// name derivation and error messages.
func ParseBytes(data []byte, file, repoHint string) (*Metadata, error) {
	plain := jsonc.ToJSON(data)

	if err := validateSchema(plain, file); err != nil {
		return nil, err
	}

	var raw rawDescriptor
	if err := json.Unmarshal(plain, &raw); err != nil {
		return nil, issue.NewErrorContext().
			WithKind(issue.KindParse).
			WithOperation("parse package descriptor").
			WithResource(file).
			WithSuggestion("Run 'webdesk explain descriptor-invalid' for the descriptor format").
			Wrap(err).
			BuildError()
	}

	dir := filepath.Dir(file)
	name := filepath.Base(dir)
	repository := repoHint
	if repository == "" {
		repository = filepath.Base(filepath.Dir(dir))
	}

	return &Metadata{
		Name:       name,
		Repository: repository,
		Type:       raw.Type,
		Enabled:    raw.Enabled,
		Path:       filepath.Join("packages", repository, name),
		Preload:    normalizePreload(raw.Preload, raw.Sources),
		Autostart:  raw.Autostart,
		Main:       raw.Main,
		Build:      raw.Build,
		Conf:       raw.Conf,
		FilePath:   file,
	}, nil
}

// validateSchema unifies the descriptor (JSON is valid CUE) with the
// embedded #Metadata definition.
func validateSchema(data []byte, file string) error {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(metadataSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile metadata schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(file))
	if userValue.Err() != nil {
		return schemaError(userValue.Err(), file)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Metadata"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return schemaError(err, file)
	}

	return nil
}

func schemaError(err error, file string) error {
	return issue.NewErrorContext().
		WithKind(issue.KindParse).
		WithOperation("validate package descriptor").
		WithResource(file).
		WithSuggestion("Run 'webdesk explain descriptor-invalid' for the descriptor format").
		Wrap(err).
		BuildError()
}

// normalizePreload upgrades the mixed legacy list into []PreloadAsset.
// Legacy sources entries are appended after the preload list; bare string
// entries get a kind inferred from their extension; structured entries pass
// through untouched (an explicit kind is never second-guessed).
func normalizePreload(preload []any, sources []string) []PreloadAsset {
	var assets []PreloadAsset

	for _, entry := range preload {
		switch e := entry.(type) {
		case string:
			assets = append(assets, PreloadAsset{Path: e, Kind: inferKind(e)})
		case map[string]any:
			asset := PreloadAsset{}
			if p, ok := e["path"].(string); ok {
				asset.Path = p
			}
			if k, ok := e["kind"].(string); ok {
				asset.Kind = AssetKind(k)
			}
			assets = append(assets, asset)
		}
	}

	for _, source := range sources {
		assets = append(assets, PreloadAsset{Path: source, Kind: inferKind(source)})
	}

	return assets
}
