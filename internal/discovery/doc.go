// SPDX-License-Identifier: EPL-2.0

// Package discovery finds installable packages and theme assets across the
// base installation and its overlays.
//
// Packages are located by their metadata.json descriptors under
// packages/<repository>/ and under each overlay's packages path, normalized
// through pkg/metadata, and filtered by the enable/disable policy before
// they feed manifest generation. Theme assets are four independent
// collections (fonts, icons, sounds, styles) filtered by per-category
// allow-lists from the configuration tree.
package discovery
