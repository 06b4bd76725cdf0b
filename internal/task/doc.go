// SPDX-License-Identifier: MPL-2.0

// Package task names and dispatches the build-time operations: bundling
// the core distribution and individual packages, regenerating the
// settings, manifest and webserver documents, and running the project's
// lint and test hooks.
package task
