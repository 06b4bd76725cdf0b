// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// settingsTemplate is the client settings script template; its single
// %SETTINGS% token receives the JSON payload.
const settingsTemplate = "settings.js.tpl"

// ClientSettingsFile is the generated client settings script name.
const ClientSettingsFile = "settings.js"

// ClientSettings renders the client settings script into the dist
// directory: the tree's client section, the resolved theme collections, and
// the autostart class list of every package flagged autostart, in discovery
// order.
func (b *Builder) ClientSettings() error {
	tpl, err := b.template(settingsTemplate)
	if err != nil {
		return err
	}

	if err := requireDir(b.Runtime.DistDir()); err != nil {
		return err
	}

	payload := b.Tree.MapAt("client")
	payload["themes"] = b.Themes
	payload["autostart"] = b.autostartClasses()

	encoded, err := json.MarshalIndent(payload, "  ", "  ")
	if err != nil {
		return fmt.Errorf("encode client settings payload: %w", err)
	}

	script := strings.ReplaceAll(tpl, "%SETTINGS%", string(encoded))

	return b.writeOutput(filepath.Join(b.Runtime.DistDir(), ClientSettingsFile), []byte(script))
}

// autostartClasses lists the qualified names of packages started with every
// client session. Always a list (never null) so the client can iterate
// unconditionally.
func (b *Builder) autostartClasses() []string {
	classes := []string{}
	for _, m := range b.Packages.All() {
		if m.Autostart {
			classes = append(classes, m.QualifiedName())
		}
	}
	return classes
}
