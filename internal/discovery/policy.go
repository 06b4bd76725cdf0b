// SPDX-License-Identifier: EPL-2.0

package discovery

import (
	"webdesk-cli/pkg/metadata"
)

// enablePolicy decides whether a discovered descriptor is admitted.
//
// A descriptor explicitly disabled in its metadata is kept only when its
// short or qualified name appears in the force-enable list. Anything else is
// dropped only when its short or qualified name appears in the force-disable
// list.
type policy struct {
	forceEnabled  map[string]bool
	forceDisabled map[string]bool
}

func (d *Discovery) enablePolicy() policy {
	return policy{
		forceEnabled:  nameSet(d.Tree.StringsAt("packages.force_enable")),
		forceDisabled: nameSet(d.Tree.StringsAt("packages.force_disable")),
	}
}

func (p policy) admit(m *metadata.Metadata) bool {
	if !m.IsEnabled() {
		return p.forceEnabled[m.Name] || p.forceEnabled[m.QualifiedName()]
	}
	return !p.forceDisabled[m.Name] && !p.forceDisabled[m.QualifiedName()]
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
