// SPDX-License-Identifier: EPL-2.0

package discovery

import (
	"webdesk-cli/pkg/metadata"
)

// PackageSet is a qualified-name-keyed mapping of discovered packages that
// remembers discovery order. Order matters downstream: the server settings
// builder folds extension config fragments in discovery order so that a
// later-discovered extension wins on key collision.
type PackageSet struct {
	byName map[string]*metadata.Metadata
	order  []string
}

// NewPackageSet creates an empty set.
func NewPackageSet() *PackageSet {
	return &PackageSet{byName: make(map[string]*metadata.Metadata)}
}

// Put inserts or replaces the entry for m's qualified name. A replacement
// keeps the original discovery position; only the value changes.
func (s *PackageSet) Put(m *metadata.Metadata) {
	name := m.QualifiedName()
	if _, exists := s.byName[name]; !exists {
		s.order = append(s.order, name)
	}
	s.byName[name] = m
}

// Get returns the entry for a qualified name.
func (s *PackageSet) Get(name string) (*metadata.Metadata, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Len returns the number of packages in the set.
func (s *PackageSet) Len() int {
	return len(s.order)
}

// Names returns the qualified names in discovery order.
func (s *PackageSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// All returns the packages in discovery order.
func (s *PackageSet) All() []*metadata.Metadata {
	out := make([]*metadata.Metadata, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// ByType returns the packages of one type, in discovery order.
func (s *PackageSet) ByType(packageType string) []*metadata.Metadata {
	var out []*metadata.Metadata
	for _, m := range s.All() {
		if m.Type == packageType {
			out = append(out, m)
		}
	}
	return out
}
