// SPDX-License-Identifier: EPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"sort"
)

// Theme asset categories, each its own directory under <root>/themes.
var themeCategories = []string{"fonts", "icons", "sounds", "styles"}

// ThemeSet holds the four independent theme asset collections.
type ThemeSet struct {
	Fonts  []string `json:"fonts"`
	Icons  []string `json:"icons"`
	Sounds []string `json:"sounds"`
	Styles []string `json:"styles"`
}

// Themes enumerates theme assets under <root>/themes/<category>/ and filters
// each category against its allow-list from the tree key
// themes.<category>. An absent allow-list admits every discovered entry; an
// empty or populated list admits only the names it contains.
func (d *Discovery) Themes() (*ThemeSet, error) {
	set := &ThemeSet{}

	for _, category := range themeCategories {
		names, err := d.themeCategory(category)
		if err != nil {
			return nil, err
		}
		switch category {
		case "fonts":
			set.Fonts = names
		case "icons":
			set.Icons = names
		case "sounds":
			set.Sounds = names
		case "styles":
			set.Styles = names
		}
	}

	return set, nil
}

func (d *Discovery) themeCategory(category string) ([]string, error) {
	dir := filepath.Join(d.Runtime.RootDir, "themes", category)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	allowed, filtered := allowList(d.Tree.StringsAt("themes." + category))

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if filtered && !allowed[entry.Name()] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// allowList reports the set and whether filtering applies at all (a nil
// list from an absent key means no filtering).
func allowList(names []string) (map[string]bool, bool) {
	if names == nil {
		return nil, false
	}
	return nameSet(names), true
}
