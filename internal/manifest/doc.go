// SPDX-License-Identifier: MPL-2.0

// Package manifest derives the generated output documents from a
// configuration snapshot and the discovered packages: the client settings
// script, the server settings document, the server package manifest, and
// web-server config fragments.
//
// The generated artifacts are literal %TOKEN% templates shared with the
// platform's non-Go runtime, so rendering is plain token substitution rather
// than Go templating. Writes are not atomic; a crash mid-write can leave a
// truncated output file, and callers are expected to re-run the task.
package manifest
